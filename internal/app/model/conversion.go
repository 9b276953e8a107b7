package model

import "time"

// Conversion is a successfully generated direct-download link, kept for history.
type Conversion struct {
	ID        string    `db:"id" gorm:"primaryKey;size:36"`
	FileID    string    `db:"file_id" gorm:"size:128;not null;index"`
	InputURL  string    `db:"input_url" gorm:"type:text;not null"`
	OutputURL string    `db:"output_url" gorm:"type:text;not null"`
	CreatedAt time.Time `db:"created_at" gorm:"autoCreateTime;index"`
}

// ConversionEvent is the JetStream payload emitted for each successful generation.
type ConversionEvent struct {
	ID        string    `json:"id"`
	FileID    string    `json:"file_id"`
	InputURL  string    `json:"input_url"`
	OutputURL string    `json:"output_url"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ConversionStreamName     = "CONVERSIONS"
	ConversionStreamSubject  = "conversions.events"
	ConversionConsumerName   = "conversion-logger"
	ConversionStreamMaxBytes = 1024 * 1024 * 100 // 100MB
)
