package models

import "time"

// Attachment is a receipt-photo reference owned by a transaction. Attachments
// are embedded in the transaction document and deleted with it; the backing
// file is removed by the file store collaborator.
type Attachment struct {
	AttachmentID string    `firestore:"attachmentId" json:"attachmentId"`
	FileName     string    `firestore:"fileName" json:"fileName"`
	RelativePath string    `firestore:"relativePath" json:"relativePath"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}
