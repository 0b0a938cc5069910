package types

// Typed partial updates. Only non-nil fields are applied, replacing the
// original's update-by-keyword-mapping with an explicit list of mutable
// fields per entity.

type AlloyPatch struct {
	PropValue   *float64 `json:"prop_value"`
	Category    *string  `json:"category"`
	RollingType *string  `json:"rolling_type"`
	PatentID    *uint    `json:"patent_id"`
}

type PredictionPatch struct {
	PropValue   *float64 `json:"prop_value"`
	Category    *string  `json:"category"`
	RollingType *string  `json:"rolling_type"`
	MLModelID   *uint    `json:"ml_model_id"`
	PersonID    *uint    `json:"person_id"`
}

type PatentPatch struct {
	AuthorsName *string `json:"authors_name"`
	PatentName  *string `json:"patent_name"`
	Description *string `json:"description"`
}

type PersonPatch struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	RoleID       *uint   `json:"role_id"`
	Organization *string `json:"organization"`
	Login        *string `json:"login"`
	Password     *string `json:"password"`
}

type RolePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type MLModelPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
