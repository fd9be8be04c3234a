package models

// Permissions granted to editors in their access token.
const (
	PermissionGDSEditor        = "gds_editor"
	PermissionManagingEditor   = "managing_editor"
	PermissionUpdateEdition    = "update_edition"
	PermissionUnpublish        = "unpublish"
	PermissionCabinetOrdering  = "cabinet_ordering"
	PermissionForcePublishBulk = "force_publish_bulk"
)
