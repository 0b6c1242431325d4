package api

// AnalyzeImageRequest is the shared request body for the three analysis
// endpoints. Image carries base64 data, with or without a data-URL prefix.
type AnalyzeImageRequest struct {
	Image       string  `json:"image" binding:"required"`
	MimeType    string  `json:"mime_type"`
	FoodName    string  `json:"food_name"`
	FoodAmountG float64 `json:"food_amount_g"`
	AnimalType  string  `json:"animal_type"`
	FoodType    string  `json:"food_type"`
	Persist     bool    `json:"persist"`
}

// SuccessResponse wraps every successful payload.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse wraps every failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func envelope(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func errEnvelope(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}
