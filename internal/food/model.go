package food

// Food is one nutrition record. The JSON tags match both the fixture files
// and the public API payload; ID and Verified may be absent in fixtures, so
// they are pointers there in spirit but modeled as zero-value defaults here:
// a fixture without "verified" ingests as unverified and must be flagged
// manually in the store before it shows up in listings.
type Food struct {
	ID          int64  `json:"id,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description"`
	Verified    bool   `json:"verified"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`

	Tags      []string           `json:"tags"`
	Allergens []string           `json:"allergens"`
	Servings  map[string]float64 `json:"servings"`

	GlycemicIndex float64 `json:"glycemic_index"`
	Energy        float64 `json:"energy"`
	Carbohydrate  float64 `json:"carbohydrate"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	SaturatedFat  float64 `json:"saturated_fat"`
	TransFat      float64 `json:"trans_fat"`
	Sugar         float64 `json:"sugar"`
	Fiber         float64 `json:"fiber"`
	Cholesterol   float64 `json:"cholesterol"`
	Sodium        float64 `json:"sodium"`
	Potassium     float64 `json:"potassium"`
	Iron          float64 `json:"iron"`
	Magnesium     float64 `json:"magnesium"`
	Calcium       float64 `json:"calcium"`
	Zinc          float64 `json:"zinc"`
	VitaminA      float64 `json:"vitamin_a"`
	VitaminB6     float64 `json:"vitamin_b6"`
	VitaminB12    float64 `json:"vitamin_b12"`
	VitaminC      float64 `json:"vitamin_c"`
	VitaminD      float64 `json:"vitamin_d"`
	VitaminE      float64 `json:"vitamin_e"`
	VitaminK      float64 `json:"vitamin_k"`
}
