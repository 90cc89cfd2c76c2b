package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/lobby-server/internal/model"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "no rows", in: pgx.ErrNoRows, want: model.ErrNotFound},
		{name: "wrapped no rows", in: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: model.ErrNotFound},
		{name: "unique violation", in: &pgconn.PgError{Code: "23505"}, want: model.ErrAlreadyExists},
		{name: "serialization failure", in: &pgconn.PgError{Code: "40001"}, want: model.ErrContention},
		{name: "deadlock", in: &pgconn.PgError{Code: "40P01"}, want: model.ErrContention},
		{name: "lock not available", in: &pgconn.PgError{Code: "55P03"}, want: model.ErrContention},
		{name: "cannot connect now", in: &pgconn.PgError{Code: "57P03"}, want: model.ErrUnavailable},
		{name: "too many connections", in: &pgconn.PgError{Code: "53300"}, want: model.ErrUnavailable},
		{name: "connection failure", in: &pgconn.PgError{Code: "08006"}, want: model.ErrUnavailable},
		{
			name: "connection refused",
			in:   fmt.Errorf("failed to connect: %w", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}),
			want: model.ErrUnavailable,
		},
		{
			name: "dial timeout",
			in:   &net.OpError{Op: "dial", Net: "tcp", Err: context.DeadlineExceeded},
			want: model.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_KeepsDriverError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	got := mapError(pgErr)

	var target *pgconn.PgError
	assert.True(t, errors.As(got, &target))
	assert.Equal(t, "40001", target.Code)
}

func TestMapError_UnknownPassesThrough(t *testing.T) {
	permission := &pgconn.PgError{Code: "42501"}
	got := mapError(permission)

	assert.Same(t, permission, got)
	assert.False(t, errors.Is(got, model.ErrContention))
	assert.False(t, errors.Is(got, model.ErrUnavailable))
}

func TestMapError_UnreachableServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot reserve a local port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, "postgres://lobby:lobby@"+addr+"/lobby?sslmode=disable&connect_timeout=2")
	if err == nil {
		conn.Close(ctx)
		t.Skip("unexpected server on reserved port")
	}

	got := mapError(err)
	assert.ErrorIs(t, got, model.ErrUnavailable)
	assert.False(t, errors.Is(got, model.ErrNotFound))
}

func TestMapError_PlainErrorPassesThrough(t *testing.T) {
	plain := errors.New("invalid input syntax")
	assert.Same(t, plain, mapError(plain))
}
