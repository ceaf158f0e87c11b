package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/worldart"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ worldart.RecordService = (*RecordService)(nil)

// RecordService implements worldart.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

const recordColumns = `id, name, names, type, duration, episodes, episodes_unbounded,
	date_premiere, date_end, country, studio, genres, summary, episode_list,
	file_info, cover, frames, created_at, updated_at`

// recordRow holds the encoded column values of a record.
type recordRow struct {
	names, genres, frames string
	datePremiere, dateEnd string
	createdAt, updatedAt  string
}

func encodeRecord(rec *worldart.Record) (recordRow, error) {
	var row recordRow
	var err error
	if row.names, err = encodeList(rec.Names); err != nil {
		return row, err
	}
	if row.genres, err = encodeList(rec.Genres); err != nil {
		return row, err
	}
	if row.frames, err = encodeList(rec.Frames); err != nil {
		return row, err
	}
	row.datePremiere = formatDate(rec.DatePremiere)
	row.dateEnd = formatDate(rec.DateEnd)
	row.createdAt = rec.CreatedAt.Format(time.RFC3339)
	row.updatedAt = rec.UpdatedAt.Format(time.RFC3339)
	return row, nil
}

// CreateRecord creates a new record.
func (s *RecordService) CreateRecord(ctx context.Context, rec *worldart.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	rec.CreatedAt = now
	rec.UpdatedAt = now

	row, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Name, row.names, string(rec.Type), rec.Duration, rec.Episodes.N, rec.Episodes.Unbounded,
		row.datePremiere, row.dateEnd, rec.Country, rec.Studio, row.genres, rec.Summary, rec.EpisodeList,
		rec.FileInfo, rec.Cover, row.frames, row.createdAt, row.updatedAt)
	if err != nil {
		return err
	}

	if err := insertSources(ctx, tx, rec.ID, rec.Sources); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSources(ctx context.Context, tx *sql.Tx, id string, sources []string) error {
	for i, u := range sources {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO record_sources (record_id, position, url) VALUES (?, ?, ?)
		`, id, i, u); err != nil {
			return err
		}
	}
	return nil
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*worldart.Record, error) {
	recs, err := s.FindRecords(ctx, worldart.RecordFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, worldart.Errorf(worldart.ENOTFOUND, "record not found")
	}
	return recs[0], nil
}

// FindRecords retrieves records matching the filter, oldest first.
// A name filter matches the primary or any alternate name.
func (s *RecordService) FindRecords(ctx context.Context, filter worldart.RecordFilter) ([]*worldart.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND (name = ? OR EXISTS (SELECT 1 FROM json_each(records.names) WHERE value = ?))")
		args = append(args, *filter.Name, *filter.Name)
	}
	if filter.Source != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM record_sources WHERE record_id = records.id AND url = ?)")
		args = append(args, *filter.Source)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}

	query.WriteString(" ORDER BY created_at ASC, rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*worldart.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, rec := range recs {
		if rec.Sources, err = s.findSources(ctx, rec.ID); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func scanRecord(rows *sql.Rows) (*worldart.Record, error) {
	var rec worldart.Record
	var row recordRow
	var typ string

	if err := rows.Scan(&rec.ID, &rec.Name, &row.names, &typ, &rec.Duration, &rec.Episodes.N, &rec.Episodes.Unbounded,
		&row.datePremiere, &row.dateEnd, &rec.Country, &rec.Studio, &row.genres, &rec.Summary, &rec.EpisodeList,
		&rec.FileInfo, &rec.Cover, &row.frames, &row.createdAt, &row.updatedAt); err != nil {
		return nil, err
	}
	rec.Type = worldart.Type(typ)

	var err error
	if rec.Names, err = decodeList(row.names, "names"); err != nil {
		return nil, err
	}
	if rec.Genres, err = decodeList(row.genres, "genres"); err != nil {
		return nil, err
	}
	if rec.Frames, err = decodeList(row.frames, "frames"); err != nil {
		return nil, err
	}
	if rec.DatePremiere, err = parseDate(row.datePremiere, "date_premiere"); err != nil {
		return nil, err
	}
	if rec.DateEnd, err = parseDate(row.dateEnd, "date_end"); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseRFC3339(row.createdAt, "created_at"); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseRFC3339(row.updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordService) findSources(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url FROM record_sources WHERE record_id = ? ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		sources = append(sources, u)
	}
	return sources, rows.Err()
}

// UpdateRecord replaces the stored fields and sources of an existing record.
func (s *RecordService) UpdateRecord(ctx context.Context, rec *worldart.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	existing, err := s.FindRecordByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	row, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE records
		SET name = ?, names = ?, type = ?, duration = ?, episodes = ?, episodes_unbounded = ?,
			date_premiere = ?, date_end = ?, country = ?, studio = ?, genres = ?, summary = ?,
			episode_list = ?, file_info = ?, cover = ?, frames = ?, updated_at = ?
		WHERE id = ?
	`, rec.Name, row.names, string(rec.Type), rec.Duration, rec.Episodes.N, rec.Episodes.Unbounded,
		row.datePremiere, row.dateEnd, rec.Country, rec.Studio, row.genres, rec.Summary,
		rec.EpisodeList, rec.FileInfo, rec.Cover, row.frames, row.updatedAt, rec.ID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM record_sources WHERE record_id = ?", rec.ID); err != nil {
		return err
	}
	if err := insertSources(ctx, tx, rec.ID, rec.Sources); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteRecord permanently removes a record and its sources.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return worldart.Errorf(worldart.ENOTFOUND, "record not found")
	}

	return nil
}
