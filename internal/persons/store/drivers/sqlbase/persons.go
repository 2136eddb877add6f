package sqlbase

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
)

type personsRepo struct {
	c conn
}

const personColumns = `p.id, p.user_id, p.first_name, p.last_name, p.cnp, p.birth_date, p.birth_place,
	p.nationality, p.id_number, p.issue_date, p.expiry_date, p.id_type, p.id_photo, p.created_at, p.updated_at`

func personDest(p *domain.Person, idType *string, photo *sql.NullString) []any {
	return []any{
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.CNP, &p.BirthDate, &p.BirthPlace,
		&p.Nationality, &p.IDNumber, &p.IssueDate, &p.ExpiryDate, idType, photo, &p.CreatedAt, &p.UpdatedAt,
	}
}

func finishPerson(p *domain.Person, idType string, photo sql.NullString) {
	p.IDType = domain.IDType(idType)
	p.IDPhoto = mapNullStringPtr(photo)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
}

func scanPerson(row interface{ Scan(...any) error }) (domain.Person, error) {
	var (
		p      domain.Person
		idType string
		photo  sql.NullString
	)
	if err := row.Scan(personDest(&p, &idType, &photo)...); err != nil {
		return domain.Person{}, err
	}
	finishPerson(&p, idType, photo)
	return p, nil
}

func (r *personsRepo) CreatePerson(ctx context.Context, p domain.Person) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	_, err := r.c.exec(ctx, `
		INSERT INTO persons (
			id, user_id, first_name, last_name, cnp, birth_date, birth_place,
			nationality, id_number, issue_date, expiry_date, id_type, id_photo, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.FirstName, p.LastName, p.CNP, p.BirthDate, p.BirthPlace,
		p.Nationality, p.IDNumber, p.IssueDate, p.ExpiryDate, string(p.IDType), mapOptionalString(p.IDPhoto),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *personsRepo) GetPersonByID(ctx context.Context, id string) (domain.Person, error) {
	p, err := scanPerson(r.c.queryRow(ctx, `SELECT `+personColumns+` FROM persons p WHERE p.id = ?`, id))
	if err != nil {
		return domain.Person{}, mapNotFound(err)
	}
	return p, nil
}

func (r *personsRepo) FindPersonByOwnerCNP(ctx context.Context, userID, cnp string) (domain.Person, error) {
	p, err := scanPerson(r.c.queryRow(ctx,
		`SELECT `+personColumns+` FROM persons p WHERE p.user_id = ? AND p.cnp = ? ORDER BY p.created_at LIMIT 1`,
		userID, cnp,
	))
	if err != nil {
		return domain.Person{}, mapNotFound(err)
	}
	return p, nil
}

func (r *personsRepo) ListPersonsByOwner(ctx context.Context, userID string) ([]domain.Person, error) {
	rows, err := r.c.query(ctx,
		`SELECT `+personColumns+` FROM persons p WHERE p.user_id = ? ORDER BY p.created_at DESC, p.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	persons := []domain.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (r *personsRepo) ListAllPersons(ctx context.Context) ([]domain.PersonWithOwner, error) {
	rows, err := r.c.query(ctx, `
		SELECT `+personColumns+`, u.id, u.first_name, u.last_name, u.email
		FROM persons p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []domain.PersonWithOwner{}
	for rows.Next() {
		var (
			pw     domain.PersonWithOwner
			idType string
			photo  sql.NullString
		)
		dest := append(personDest(&pw.Person, &idType, &photo),
			&pw.Owner.ID, &pw.Owner.FirstName, &pw.Owner.LastName, &pw.Owner.Email)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		finishPerson(&pw.Person, idType, photo)
		out = append(out, pw)
	}
	return out, rows.Err()
}

func (r *personsRepo) UpdatePerson(ctx context.Context, p domain.Person) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	res, err := r.c.exec(ctx, `
		UPDATE persons SET
			first_name = ?, last_name = ?, cnp = ?, birth_date = ?, birth_place = ?,
			nationality = ?, id_number = ?, issue_date = ?, expiry_date = ?, id_type = ?,
			id_photo = ?, updated_at = ?
		WHERE id = ?`,
		p.FirstName, p.LastName, p.CNP, p.BirthDate, p.BirthPlace,
		p.Nationality, p.IDNumber, p.IssueDate, p.ExpiryDate, string(p.IDType),
		mapOptionalString(p.IDPhoto), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *personsRepo) DeletePerson(ctx context.Context, id string) error {
	res, err := r.c.exec(ctx, `DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
