package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), fiber.StatusBadRequest},
		{Authorization("not yours"), fiber.StatusForbidden},
		{NotFound("missing"), fiber.StatusNotFound},
		{Conflict("duplicate"), fiber.StatusConflict},
		{State("window closed"), fiber.StatusUnprocessableEntity},
		{errors.New("plain"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("saving: %w", Conflict("duplicate occurrence"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("opaque")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))

	pgErr := &pgconn.PgError{Code: "23505"}
	assert.True(t, IsDuplicateKey(pgErr))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", pgErr)))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503"}))

	// string fallback for drivers that hide the pg error type
	assert.True(t, IsDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "uq_attendance_records_slot_date" (SQLSTATE 23505)`)))
}
