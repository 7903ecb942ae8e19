package response_models

import "time"

type ChatResponse struct {
	Reply string `json:"reply"`
	Topic string `json:"topic"`
}

type DocumentLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
