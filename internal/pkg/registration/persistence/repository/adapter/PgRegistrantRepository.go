package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// PgRegistrantRepository implements the registrant repository on Postgres,
// for deployments that prefer a database over a shared spreadsheet. The
// upsert contract is enforced by the unique user_id key instead of a
// find-before-write scan.
type PgRegistrantRepository struct {
	pool *pgxpool.Pool
}

func NewPgRegistrantRepository(pool *pgxpool.Pool) *PgRegistrantRepository {
	return &PgRegistrantRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.RegistrantRepository = (*PgRegistrantRepository)(nil)

func (r *PgRegistrantRepository) Upsert(ctx context.Context, reg registration.Registrant) error {
	if r == nil || r.pool == nil {
		return errors.New("PgRegistrantRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO registrants (
			user_id, username, full_name, email, position, company,
			experience, job_search, knew_company, confirmed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id)
		DO UPDATE SET username = EXCLUDED.username,
		              full_name = EXCLUDED.full_name,
		              email = EXCLUDED.email,
		              position = EXCLUDED.position,
		              company = EXCLUDED.company,
		              experience = EXCLUDED.experience,
		              job_search = EXCLUDED.job_search,
		              knew_company = EXCLUDED.knew_company,
		              confirmed = EXCLUDED.confirmed
	`, reg.UserID, reg.Username, reg.FullName, reg.Email, reg.Position, reg.Company,
		reg.Experience, reg.JobSearch, reg.KnewCompany, string(reg.Confirmed))
	return err
}

func (r *PgRegistrantRepository) SetConfirmation(ctx context.Context, userID int64, status registration.ConfirmationStatus) error {
	if r == nil || r.pool == nil {
		return errors.New("PgRegistrantRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE registrants
		SET confirmed = $2
		WHERE user_id = $1
	`, userID, string(status))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgRegistrantRepository) SetFeedback(ctx context.Context, userID int64, answers [registration.FeedbackCount]string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgRegistrantRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE registrants
		SET feedback_1 = $2, feedback_2 = $3, feedback_3 = $4, feedback_4 = $5, feedback_5 = $6
		WHERE user_id = $1
	`, userID, answers[0], answers[1], answers[2], answers[3], answers[4])
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgRegistrantRepository) ListAll(ctx context.Context) ([]registration.Registrant, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgRegistrantRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, username, full_name, email, position, company,
		       experience, job_search, knew_company, confirmed,
		       COALESCE(feedback_1, ''), COALESCE(feedback_2, ''), COALESCE(feedback_3, ''),
		       COALESCE(feedback_4, ''), COALESCE(feedback_5, '')
		FROM registrants
		ORDER BY user_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []registration.Registrant
	for rows.Next() {
		var (
			reg       registration.Registrant
			confirmed string
		)
		if err := rows.Scan(
			&reg.UserID, &reg.Username, &reg.FullName, &reg.Email, &reg.Position, &reg.Company,
			&reg.Experience, &reg.JobSearch, &reg.KnewCompany, &confirmed,
			&reg.Feedback[0], &reg.Feedback[1], &reg.Feedback[2], &reg.Feedback[3], &reg.Feedback[4],
		); err != nil {
			return nil, err
		}
		reg.Confirmed = registration.NormalizeStatus(confirmed)
		regs = append(regs, reg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return regs, nil
}
