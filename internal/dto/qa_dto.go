package dto

type QAUploadRequest struct {
	Question    string `json:"question" validate:"required"`
	Answer      string `json:"answer" validate:"required"`
	UserId      string `json:"user_id" validate:"required"`
	ShopId      string `json:"shop_id" validate:"omitempty"`
	ShopName    string `json:"shop_name" validate:"omitempty"`
	ProductId   string `json:"product_id" validate:"omitempty"`
	ProductName string `json:"product_name" validate:"omitempty"`
}

type QABatchUploadRequest struct {
	Items []QAUploadRequest `json:"items" validate:"required,min=1,dive"`
}

type QAUploadResponse struct {
	DocId string `json:"doc_id"`
}

type QABatchUploadResponse struct {
	Accepted int      `json:"accepted"`
	DocIds   []string `json:"doc_ids"`
}

// IndexQAMessage is the async indexing payload carried over the message bus.
type IndexQAMessage struct {
	DocId       string `json:"doc_id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserId      string `json:"user_id"`
	ShopId      string `json:"shop_id"`
	ShopName    string `json:"shop_name"`
	ProductId   string `json:"product_id"`
	ProductName string `json:"product_name"`
}
