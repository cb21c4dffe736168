package model

import "time"

// ChatMessage is one entry of a session's chat transcript
type ChatMessage struct {
	Sender  string    `json:"sender"` // farmer or buyer
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}
