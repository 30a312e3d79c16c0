package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/docuflow/docuflow/history"
)

func testRecord() history.Record {
	return history.Record{
		ID:        "r-1",
		SessionID: "s-1",
		Question:  "what is a cat?",
		Answer:    "a mammal",
		Route:     "rag",
		PathLabel: "RAG (document search)",
		CreatedAt: time.Now().UTC(),
	}
}

func TestPostgresHistoryStore_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "chat_history")
	r := testRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chat_history")).
		WithArgs(r.ID, r.SessionID, r.Question, r.Answer, r.Route, r.PathLabel, r.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.Append(context.Background(), r)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryStore_Append_DatabaseError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "chat_history")
	r := testRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chat_history")).
		WithArgs(r.ID, r.SessionID, r.Question, r.Answer, r.Route, r.PathLabel, r.CreatedAt).
		WillReturnError(errors.New("database connection failed"))

	err = store.Append(context.Background(), r)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to append record")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "chat_history")
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "session_id", "question", "answer", "route", "path_label", "created_at"}).
		AddRow("r-1", "s-1", "q1", "a1", "rag", "RAG (document search)", now).
		AddRow("r-2", "s-1", "q2", "a2", "direct", "Direct (internal knowledge)", now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, session_id, question, answer, route, path_label, created_at")).
		WithArgs("s-1").
		WillReturnRows(rows)

	records, err := store.List(context.Background(), "s-1")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "q1", records[0].Question)
	assert.Equal(t, "direct", records[1].Route)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryStore_List_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "chat_history")

	rows := pgxmock.NewRows([]string{"id", "session_id", "question", "answer", "route", "path_label", "created_at"})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, session_id, question, answer, route, path_label, created_at")).
		WithArgs("s-empty").
		WillReturnRows(rows)

	records, err := store.List(context.Background(), "s-empty")
	assert.NoError(t, err)
	assert.Empty(t, records)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryStore_List_DatabaseError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "chat_history")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, session_id, question, answer, route, path_label, created_at")).
		WithArgs("s-1").
		WillReturnError(errors.New("database connection failed"))

	records, err := store.List(context.Background(), "s-1")
	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "failed to list records")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryStore_Clear(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "chat_history")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM chat_history WHERE session_id = $1")).
		WithArgs("s-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	err = store.Clear(context.Background(), "s-1")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryStore_InitSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "chat_history")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS chat_history")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	err = store.InitSchema(context.Background())
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresHistoryStoreWithPool_DefaultTableName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	store := NewPostgresHistoryStoreWithPool(mock, "")
	assert.Equal(t, "chat_history", store.tableName)
}
