package models

type PartsRequestStatus string

const (
	PartsRequestPending PartsRequestStatus = "pending"
	PartsRequestSent    PartsRequestStatus = "sent"
	PartsRequestFailed  PartsRequestStatus = "failed"
)
