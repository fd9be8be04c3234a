package models

// Attachment is a file attached to an edition.
type Attachment struct {
	ID                     int64
	EditionID              int64
	Title                  string
	Locale                 string
	Filename               string
	FileCache              string
	ISBN                   string
	UniqueReference        string
	CommandPaperNumber     string
	UnnumberedCommandPaper bool
	OrderURL               string
	Price                  string
	HocPaperNumber         string
	UnnumberedHocPaper     bool
	ParliamentarySession   string
	ToReplaceID            int64
}

// StatisticsAnnouncement is a pre-announced statistics release.
type StatisticsAnnouncement struct {
	ID              int64
	Slug            string
	Title           string
	PublishingState string
	RedirectURL     string
	OrganisationIDs []int64
}

const PublishingStateUnpublished = "unpublished"

// FactCheckRequest asks an external reviewer to check an edition.
type FactCheckRequest struct {
	ID           int64
	EditionID    int64
	EditionTitle string
	EditionType  EditionType
	EmailAddress string
	Requestor    User
	Instructions string
	Comments     string
}
