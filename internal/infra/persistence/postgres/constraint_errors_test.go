package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped gorm translated", err: pkgerrors.Wrap(gorm.ErrDuplicatedKey, "insert"), want: true},
		{name: "postgres unique_violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres not_null_violation", err: &pgconn.PgError{Code: "23502"}, want: false},
		{name: "sqlite", err: errors.New("constraint failed: UNIQUE constraint failed: auth_users.email (2067)"), want: true},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintViolation(tt.err))
		})
	}
}
