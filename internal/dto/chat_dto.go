package dto

type ChatRequest struct {
	// TableId names the conversation. When blank the user id doubles as
	// the conversation id.
	TableId  string `json:"table_id" validate:"omitempty"`
	Question string `json:"question" validate:"required"`
	// UserId scopes retrieval to the owner's knowledge records.
	UserId string `json:"user_id" validate:"required"`
	// ShopName narrows retrieval to one shop when set (exact match).
	ShopName string `json:"shop_name" validate:"omitempty"`
	// ProductName narrows retrieval by fuzzy product match when set.
	ProductName string `json:"product_name" validate:"omitempty"`
	// VectorField picks the similarity target: "question" (default) or "answer".
	VectorField string `json:"vector_field" validate:"omitempty,oneof=question answer"`
}

type ChatResponse struct {
	Answer        string `json:"answer"`
	DocumentsUsed int    `json:"documents_used"`
}
