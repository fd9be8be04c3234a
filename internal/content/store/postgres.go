package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"govpub/internal/content/models"
	"govpub/internal/orgtype"
	"govpub/pkg/platform/sentinel"
	"govpub/pkg/platform/tx"
)

//go:embed schema.sql
var schema string

// Migrate creates the content tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply content schema: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// PostgresEditionStore persists editions in PostgreSQL.
type PostgresEditionStore struct {
	*QueryLog
	db *sql.DB
}

func NewPostgresEditionStore(db *sql.DB) *PostgresEditionStore {
	return &PostgresEditionStore{QueryLog: newQueryLog(), db: db}
}

func (s *PostgresEditionStore) exec(ctx context.Context) tx.Executor {
	return s.wrap(tx.Exec(ctx, s.db))
}

func (s *PostgresEditionStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.Run(ctx, s.db, fn)
}

const editionColumns = `id, document_id, content_id, type, title, summary, body, slug, state, locale,
	organisation_ids, topic_ids, policy_ids, has_document_source, force_published, access_limited,
	published_at, author_id, rejected_by_id, updated_at`

func scanEdition(row scanner) (*models.Edition, error) {
	var (
		e           models.Edition
		publishedAt sql.NullTime
	)
	err := row.Scan(&e.ID, &e.DocumentID, &e.ContentID, &e.Type, &e.Title, &e.Summary, &e.Body,
		&e.Slug, &e.State, &e.Locale,
		pq.Array(&e.OrganisationIDs), pq.Array(&e.TopicIDs), pq.Array(&e.PolicyIDs),
		&e.HasDocumentSource, &e.ForcePublished, &e.AccessLimited, &publishedAt, &e.AuthorID, &e.RejectedByID, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		e.PublishedAt = &t
	}
	return &e, nil
}

func (s *PostgresEditionStore) queryEditions(ctx context.Context, query string, args ...any) ([]*models.Edition, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Edition
	for rows.Next() {
		e, err := scanEdition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresEditionStore) FindByID(ctx context.Context, id int64) (*models.Edition, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		`SELECT `+editionColumns+` FROM editions WHERE id = $1`, id)
	e, err := scanEdition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find edition: %w", err)
	}
	return e, nil
}

func (s *PostgresEditionStore) FindPublishedBySlug(ctx context.Context, typ models.EditionType, slug string) (*models.Edition, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		`SELECT `+editionColumns+` FROM editions
		WHERE type = $1 AND slug = $2 AND state = $3
		ORDER BY id DESC LIMIT 1`, typ, slug, models.StatePublished)
	e, err := scanEdition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find published edition: %w", err)
	}
	return e, nil
}

// Save inserts editions with a zero ID and updates the rest.
func (s *PostgresEditionStore) Save(ctx context.Context, e *models.Edition) error {
	exec := s.exec(ctx)
	var publishedAt any
	if e.PublishedAt != nil {
		publishedAt = *e.PublishedAt
	}
	if e.ID == 0 {
		err := exec.QueryRowContext(ctx, `
			INSERT INTO editions (document_id, content_id, type, title, summary, body, slug, state, locale,
				organisation_ids, topic_ids, policy_ids, has_document_source, force_published, access_limited,
				published_at, author_id, rejected_by_id, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW())
			RETURNING id, updated_at`,
			e.DocumentID, e.ContentID, e.Type, e.Title, e.Summary, e.Body, e.Slug, e.State, e.Locale,
			pq.Array(e.OrganisationIDs), pq.Array(e.TopicIDs), pq.Array(e.PolicyIDs),
			e.HasDocumentSource, e.ForcePublished, e.AccessLimited, publishedAt, e.AuthorID, e.RejectedByID,
		).Scan(&e.ID, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert edition: %w", err)
		}
		if e.DocumentID == 0 {
			e.DocumentID = e.ID
			if _, err := exec.ExecContext(ctx, `UPDATE editions SET document_id = id WHERE id = $1`, e.ID); err != nil {
				return fmt.Errorf("set edition document: %w", err)
			}
		}
		return nil
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE editions SET
			title = $2, summary = $3, body = $4, slug = $5, state = $6, locale = $7,
			organisation_ids = $8, topic_ids = $9, policy_ids = $10,
			has_document_source = $11, force_published = $12, published_at = $13,
			rejected_by_id = $14, access_limited = $15, updated_at = NOW()
		WHERE id = $1`,
		e.ID, e.Title, e.Summary, e.Body, e.Slug, e.State, e.Locale,
		pq.Array(e.OrganisationIDs), pq.Array(e.TopicIDs), pq.Array(e.PolicyIDs),
		e.HasDocumentSource, e.ForcePublished, publishedAt, e.RejectedByID, e.AccessLimited,
	)
	if err != nil {
		return fmt.Errorf("update edition: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// latestEditions restricts to the newest edition of each document.
const latestEditions = `NOT EXISTS (SELECT 1 FROM editions newer WHERE newer.document_id = editions.document_id AND newer.id > editions.id)`

func (s *PostgresEditionStore) ListForcePublishCandidates(ctx context.Context, organisationID int64, excludedTypes []models.EditionType) ([]*models.Edition, error) {
	excluded := make([]string, 0, len(excludedTypes))
	for _, t := range excludedTypes {
		excluded = append(excluded, string(t))
	}
	editions, err := s.queryEditions(ctx, `
		SELECT `+editionColumns+` FROM editions
		WHERE state = $1
		  AND $2 = ANY(organisation_ids)
		  AND has_document_source
		  AND NOT (type = ANY($3))
		  AND `+latestEditions+`
		ORDER BY id`,
		models.StateDraft, organisationID, pq.Array(excluded))
	if err != nil {
		return nil, fmt.Errorf("list force publish candidates: %w", err)
	}
	return editions, nil
}

func (s *PostgresEditionStore) EachLatestByType(ctx context.Context, typ models.EditionType, batchSize int, fn func(*models.Edition) error) error {
	if batchSize <= 0 {
		batchSize = 1000
	}
	var after int64
	for {
		batch, err := s.queryEditions(ctx, `
			SELECT `+editionColumns+` FROM editions
			WHERE type = $1 AND id > $2 AND `+latestEditions+`
			ORDER BY id LIMIT $3`, typ, after, batchSize)
		if err != nil {
			return fmt.Errorf("list editions batch: %w", err)
		}
		for _, e := range batch {
			if err := fn(e); err != nil {
				return err
			}
			after = e.ID
		}
		if len(batch) < batchSize {
			return nil
		}
	}
}

func (s *PostgresEditionStore) CountLatestByType(ctx context.Context, typ models.EditionType) (int, error) {
	var n int
	err := s.exec(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM editions WHERE type = $1 AND `+latestEditions, typ).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count editions: %w", err)
	}
	return n, nil
}

func (s *PostgresEditionStore) ListPublishedByOrganisation(ctx context.Context, organisationID int64, typ models.EditionType, limit int) ([]*models.Edition, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	editions, err := s.queryEditions(ctx,
		`SELECT `+editionColumns+` FROM editions
		WHERE state = $1 AND $2 = ANY(organisation_ids) AND ($3 = '' OR type = $3)
		ORDER BY published_at DESC NULLS LAST, id DESC
		LIMIT $4`,
		models.StatePublished, organisationID, string(typ), lim)
	if err != nil {
		return nil, fmt.Errorf("list published editions: %w", err)
	}
	return editions, nil
}

func (s *PostgresEditionStore) RecordVersion(ctx context.Context, v models.VersionEntry) error {
	_, err := s.exec(ctx).ExecContext(ctx, `
		INSERT INTO edition_versions (edition_id, user_id, event, state, remark, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.EditionID, v.UserID, v.Event, v.State, v.Remark, v.UserAgent, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("record edition version: %w", err)
	}
	return nil
}

func (s *PostgresEditionStore) Versions(ctx context.Context, editionID int64) ([]models.VersionEntry, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, `
		SELECT edition_id, user_id, event, state, remark, user_agent, created_at
		FROM edition_versions WHERE edition_id = $1 ORDER BY id`, editionID)
	if err != nil {
		return nil, fmt.Errorf("list edition versions: %w", err)
	}
	defer rows.Close()

	var out []models.VersionEntry
	for rows.Next() {
		var v models.VersionEntry
		if err := rows.Scan(&v.EditionID, &v.UserID, &v.Event, &v.State, &v.Remark, &v.UserAgent, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan edition version: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// PostgresOrganisationStore persists organisations in PostgreSQL.
type PostgresOrganisationStore struct {
	db *sql.DB
}

func NewPostgresOrganisationStore(db *sql.DB) *PostgresOrganisationStore {
	return &PostgresOrganisationStore{db: db}
}

const organisationColumns = `id, name, acronym, slug, organisation_type, ministerial_ordering, has_email_signup_page,
	description, govuk_status, url`

func scanOrganisation(row scanner) (*models.Organisation, error) {
	var o models.Organisation
	if err := row.Scan(&o.ID, &o.Name, &o.Acronym, &o.Slug, &o.OrganisationType, &o.MinisterialOrdering, &o.HasEmailSignupPage,
		&o.Description, &o.GovukStatus, &o.URL); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresOrganisationStore) findOne(ctx context.Context, where string, arg any) (*models.Organisation, error) {
	row := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+organisationColumns+` FROM organisations WHERE `+where+` LIMIT 1`, arg)
	o, err := scanOrganisation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find organisation: %w", err)
	}
	return o, nil
}

func (s *PostgresOrganisationStore) FindByID(ctx context.Context, id int64) (*models.Organisation, error) {
	return s.findOne(ctx, "id = $1", id)
}

func (s *PostgresOrganisationStore) FindByAcronym(ctx context.Context, acronym string) (*models.Organisation, error) {
	return s.findOne(ctx, "LOWER(acronym) = $1", strings.ToLower(acronym))
}

func (s *PostgresOrganisationStore) FindBySlug(ctx context.Context, slug string) (*models.Organisation, error) {
	return s.findOne(ctx, "slug = $1", slug)
}

func (s *PostgresOrganisationStore) ListMinisterial(ctx context.Context) ([]*models.Organisation, error) {
	return s.list(ctx, `SELECT `+organisationColumns+` FROM organisations
		WHERE organisation_type = $1 ORDER BY ministerial_ordering, id`, string(orgtype.MinisterialDepartment))
}

func (s *PostgresOrganisationStore) List(ctx context.Context) ([]*models.Organisation, error) {
	return s.list(ctx, `SELECT `+organisationColumns+` FROM organisations ORDER BY id`)
}

func (s *PostgresOrganisationStore) list(ctx context.Context, query string, args ...any) ([]*models.Organisation, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	defer rows.Close()

	var out []*models.Organisation
	for rows.Next() {
		o, err := scanOrganisation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organisation: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresOrganisationStore) Save(ctx context.Context, o *models.Organisation) error {
	exec := tx.Exec(ctx, s.db)
	if o.ID == 0 {
		err := exec.QueryRowContext(ctx, `
			INSERT INTO organisations (name, acronym, slug, organisation_type, ministerial_ordering, has_email_signup_page,
				description, govuk_status, url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			o.Name, o.Acronym, o.Slug, o.OrganisationType, o.MinisterialOrdering, o.HasEmailSignupPage,
			o.Description, govukStatus(o), o.URL,
		).Scan(&o.ID)
		if err != nil {
			return fmt.Errorf("insert organisation: %w", err)
		}
		return nil
	}
	_, err := exec.ExecContext(ctx, `
		UPDATE organisations SET name = $2, acronym = $3, slug = $4, organisation_type = $5,
			ministerial_ordering = $6, has_email_signup_page = $7, description = $8, govuk_status = $9, url = $10
		WHERE id = $1`,
		o.ID, o.Name, o.Acronym, o.Slug, o.OrganisationType, o.MinisterialOrdering, o.HasEmailSignupPage,
		o.Description, govukStatus(o), o.URL)
	if err != nil {
		return fmt.Errorf("update organisation: %w", err)
	}
	return nil
}

func govukStatus(o *models.Organisation) string {
	if o.GovukStatus == "" {
		return models.GovukStatusLive
	}
	return o.GovukStatus
}

func (s *PostgresOrganisationStore) FeaturedEditions(ctx context.Context, organisationID int64) ([]*models.FeaturedEdition, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT organisation_id, edition_id, ordering, image_url, alt_text
		FROM featured_editions WHERE organisation_id = $1 ORDER BY ordering, id`, organisationID)
	if err != nil {
		return nil, fmt.Errorf("list featured editions: %w", err)
	}
	defer rows.Close()

	var out []*models.FeaturedEdition
	for rows.Next() {
		var f models.FeaturedEdition
		if err := rows.Scan(&f.OrganisationID, &f.EditionID, &f.Ordering, &f.ImageURL, &f.AltText); err != nil {
			return nil, fmt.Errorf("scan featured edition: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (s *PostgresOrganisationStore) Feature(ctx context.Context, f *models.FeaturedEdition) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO featured_editions (organisation_id, edition_id, ordering, image_url, alt_text)
		VALUES ($1, $2, $3, $4, $5)`,
		f.OrganisationID, f.EditionID, f.Ordering, f.ImageURL, f.AltText)
	if err != nil {
		return fmt.Errorf("insert featured edition: %w", err)
	}
	return nil
}

// PostgresUserStore persists editor accounts in PostgreSQL.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, name, email, permissions, organisation_ids FROM users WHERE `+where+` ORDER BY id LIMIT 1`, arg,
	).Scan(&u.ID, &u.Name, &u.Email, pq.Array(&u.Permissions), pq.Array(&u.OrganisationIDs))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.findOne(ctx, "id = $1", id)
}

func (s *PostgresUserStore) FindByName(ctx context.Context, name string) (*models.User, error) {
	return s.findOne(ctx, "name = $1", name)
}

func (s *PostgresUserStore) Save(ctx context.Context, u *models.User) error {
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO users (name, email, permissions, organisation_ids) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Name, u.Email, pq.Array(u.Permissions), pq.Array(u.OrganisationIDs),
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// PostgresRoleStore reads roles and their current appointments.
type PostgresRoleStore struct {
	db *sql.DB
}

func NewPostgresRoleStore(db *sql.DB) *PostgresRoleStore {
	return &PostgresRoleStore{db: db}
}

func (s *PostgresRoleStore) ListMinisterial(ctx context.Context) ([]*models.Role, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT `+roleColumns+` FROM roles r
		LEFT JOIN role_appointments ra ON ra.role_id = r.id AND ra.current
		LEFT JOIN people p ON p.id = ra.person_id
		WHERE r.kind = $1
		ORDER BY r.ordering, r.id, p.id`, string(models.RoleMinisterial))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return scanRoles(rows)
}

func (s *PostgresRoleStore) ListByOrganisation(ctx context.Context, organisationID int64) ([]*models.Role, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT `+roleColumns+` FROM roles r
		LEFT JOIN role_appointments ra ON ra.role_id = r.id AND ra.current
		LEFT JOIN people p ON p.id = ra.person_id
		WHERE $1 = ANY(r.organisation_ids)
		ORDER BY r.ordering, r.id, p.id`, organisationID)
	if err != nil {
		return nil, fmt.Errorf("list organisation roles: %w", err)
	}
	return scanRoles(rows)
}

const roleColumns = `r.id, r.name, r.slug, r.kind, r.seniority, r.ordering, r.cabinet_member, r.attends_cabinet,
	r.permanent_secretary, r.chief_of_the_defence_staff, r.organisation_ids,
	p.id, p.name, p.forename, p.surname, p.slug, p.image_url`

// scanRoles folds one row per appointment into roles, keeping row order.
func scanRoles(rows *sql.Rows) ([]*models.Role, error) {
	defer rows.Close()

	var (
		out  []*models.Role
		byID = make(map[int64]*models.Role)
	)
	for rows.Next() {
		var (
			r                                       models.Role
			personID                                sql.NullInt64
			name, forename, surname, slug, imageURL sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Slug, &r.Kind, &r.Seniority, &r.Ordering, &r.CabinetMember, &r.AttendsCabinet,
			&r.PermanentSecretary, &r.ChiefOfTheDefenceStaff, pq.Array(&r.OrganisationIDs),
			&personID, &name, &forename, &surname, &slug, &imageURL); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		role, ok := byID[r.ID]
		if !ok {
			role = &r
			byID[r.ID] = role
			out = append(out, role)
		}
		if personID.Valid {
			role.CurrentPeople = append(role.CurrentPeople, &models.Person{
				ID: personID.Int64, Name: name.String, Forename: forename.String, Surname: surname.String,
				Slug: slug.String, ImageURL: imageURL.String,
			})
		}
	}
	return out, rows.Err()
}

// Save inserts a role with its current people. People are upserted by id.
func (s *PostgresRoleStore) Save(ctx context.Context, role *models.Role) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.Exec(ctx, s.db)
		err := exec.QueryRowContext(ctx, `
			INSERT INTO roles (name, slug, kind, seniority, ordering, cabinet_member, attends_cabinet,
				permanent_secretary, chief_of_the_defence_staff, organisation_ids)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			role.Name, role.Slug, string(role.KindOrDefault()), role.Seniority, role.Ordering, role.CabinetMember,
			role.AttendsCabinet, role.PermanentSecretary, role.ChiefOfTheDefenceStaff, pq.Array(role.OrganisationIDs),
		).Scan(&role.ID)
		if err != nil {
			return fmt.Errorf("insert role: %w", err)
		}
		for _, p := range role.CurrentPeople {
			if p.ID == 0 {
				err = exec.QueryRowContext(ctx,
					`INSERT INTO people (name, forename, surname, slug, image_url) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
					p.Name, p.Forename, p.Surname, p.Slug, p.ImageURL).Scan(&p.ID)
				if err != nil {
					return fmt.Errorf("insert person: %w", err)
				}
			}
			if _, err := exec.ExecContext(ctx,
				`INSERT INTO role_appointments (role_id, person_id, current) VALUES ($1, $2, TRUE)`,
				role.ID, p.ID); err != nil {
				return fmt.Errorf("insert appointment: %w", err)
			}
		}
		return nil
	})
}

// PostgresAttachmentStore persists attachments in PostgreSQL.
type PostgresAttachmentStore struct {
	db *sql.DB
}

func NewPostgresAttachmentStore(db *sql.DB) *PostgresAttachmentStore {
	return &PostgresAttachmentStore{db: db}
}

func (s *PostgresAttachmentStore) ListByEdition(ctx context.Context, editionID int64) ([]*models.Attachment, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, edition_id, title, locale, filename, file_cache, isbn, unique_reference,
			command_paper_number, unnumbered_command_paper, order_url, price, hoc_paper_number,
			unnumbered_hoc_paper, parliamentary_session, to_replace_id
		FROM attachments WHERE edition_id = $1 ORDER BY id`, editionID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var out []*models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.EditionID, &a.Title, &a.Locale, &a.Filename, &a.FileCache, &a.ISBN,
			&a.UniqueReference, &a.CommandPaperNumber, &a.UnnumberedCommandPaper, &a.OrderURL, &a.Price,
			&a.HocPaperNumber, &a.UnnumberedHocPaper, &a.ParliamentarySession, &a.ToReplaceID); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (s *PostgresAttachmentStore) SaveAll(ctx context.Context, attachments []*models.Attachment) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.Exec(ctx, s.db)
		for _, a := range attachments {
			args := []any{a.EditionID, a.Title, a.Locale, a.Filename, a.FileCache, a.ISBN, a.UniqueReference,
				a.CommandPaperNumber, a.UnnumberedCommandPaper, a.OrderURL, a.Price, a.HocPaperNumber,
				a.UnnumberedHocPaper, a.ParliamentarySession, a.ToReplaceID}
			if a.ID == 0 {
				err := exec.QueryRowContext(ctx, `
					INSERT INTO attachments (edition_id, title, locale, filename, file_cache, isbn, unique_reference,
						command_paper_number, unnumbered_command_paper, order_url, price, hoc_paper_number,
						unnumbered_hoc_paper, parliamentary_session, to_replace_id)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
					RETURNING id`, args...).Scan(&a.ID)
				if err != nil {
					return fmt.Errorf("insert attachment: %w", err)
				}
				continue
			}
			_, err := exec.ExecContext(ctx, `
				UPDATE attachments SET edition_id = $1, title = $2, locale = $3, filename = $4, file_cache = $5,
					isbn = $6, unique_reference = $7, command_paper_number = $8, unnumbered_command_paper = $9,
					order_url = $10, price = $11, hoc_paper_number = $12, unnumbered_hoc_paper = $13,
					parliamentary_session = $14, to_replace_id = $15
				WHERE id = $16`, append(args, a.ID)...)
			if err != nil {
				return fmt.Errorf("update attachment: %w", err)
			}
		}
		return nil
	})
}

// PostgresStatisticsAnnouncementStore persists announcements in PostgreSQL.
type PostgresStatisticsAnnouncementStore struct {
	db *sql.DB
}

func NewPostgresStatisticsAnnouncementStore(db *sql.DB) *PostgresStatisticsAnnouncementStore {
	return &PostgresStatisticsAnnouncementStore{db: db}
}

func (s *PostgresStatisticsAnnouncementStore) FindBySlug(ctx context.Context, slug string) (*models.StatisticsAnnouncement, error) {
	var a models.StatisticsAnnouncement
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, slug, title, publishing_state, redirect_url, organisation_ids
		FROM statistics_announcements WHERE slug = $1`, slug,
	).Scan(&a.ID, &a.Slug, &a.Title, &a.PublishingState, &a.RedirectURL, pq.Array(&a.OrganisationIDs))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find statistics announcement: %w", err)
	}
	return &a, nil
}

func (s *PostgresStatisticsAnnouncementStore) Save(ctx context.Context, a *models.StatisticsAnnouncement) error {
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO statistics_announcements (slug, title, publishing_state, redirect_url, organisation_ids)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			publishing_state = EXCLUDED.publishing_state,
			redirect_url = EXCLUDED.redirect_url,
			organisation_ids = EXCLUDED.organisation_ids
		RETURNING id`,
		a.Slug, a.Title, a.PublishingState, a.RedirectURL, pq.Array(a.OrganisationIDs),
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("save statistics announcement: %w", err)
	}
	return nil
}

// PostgresTaxonomyStore reads policies and topics from PostgreSQL.
type PostgresTaxonomyStore struct {
	db *sql.DB
}

func NewPostgresTaxonomyStore(db *sql.DB) *PostgresTaxonomyStore {
	return &PostgresTaxonomyStore{db: db}
}

// PoliciesByIDs returns the policies that exist, in the order of ids.
func (s *PostgresTaxonomyStore) PoliciesByIDs(ctx context.Context, ids []int64) ([]*models.Policy, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT p.id, p.title, p.slug, p.topic_ids
		FROM unnest($1::bigint[]) WITH ORDINALITY AS wanted(id, ord)
		JOIN policies p ON p.id = wanted.id
		ORDER BY wanted.ord`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var out []*models.Policy
	for rows.Next() {
		var p models.Policy
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, pq.Array(&p.TopicIDs)); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// TopicsByIDs returns the topics that exist, in the order of ids.
func (s *PostgresTaxonomyStore) TopicsByIDs(ctx context.Context, ids []int64) ([]*models.Topic, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT t.id, t.name, t.slug
		FROM unnest($1::bigint[]) WITH ORDINALITY AS wanted(id, ord)
		JOIN topics t ON t.id = wanted.id
		ORDER BY wanted.ord`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var out []*models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (s *PostgresTaxonomyStore) SavePolicy(ctx context.Context, p *models.Policy) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO policies (id, title, slug, topic_ids) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, slug = EXCLUDED.slug, topic_ids = EXCLUDED.topic_ids`,
		p.ID, p.Title, p.Slug, pq.Array(p.TopicIDs))
	if err != nil {
		return fmt.Errorf("save policy: %w", err)
	}
	return nil
}

func (s *PostgresTaxonomyStore) SaveTopic(ctx context.Context, t *models.Topic) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO topics (id, name, slug) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, slug = EXCLUDED.slug`,
		t.ID, t.Name, t.Slug)
	if err != nil {
		return fmt.Errorf("save topic: %w", err)
	}
	return nil
}
