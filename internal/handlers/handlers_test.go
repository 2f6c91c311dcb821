package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/untibullet/syncflow/internal/ai"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	reply   string
	err     error
	lastReq ai.CompletionRequest
	calls   int
}

func (g *fakeGenerator) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type testEnv struct {
	e       *echo.Echo
	handler *Handler
	store   *fakeStore
	gen     *fakeGenerator
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	gen := &fakeGenerator{}
	return &testEnv{
		e:       echo.New(),
		handler: New(store, gen, zap.NewNop()),
		store:   store,
		gen:     gen,
	}
}

func (env *testEnv) request(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func (env *testEnv) requestWithParam(method, body, name, value string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := env.request(method, body)
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c, rec
}

func (env *testEnv) createUser(t *testing.T, name, email string) models.User {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q}`, name, email)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.CreateUser(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func (env *testEnv) createColumn(t *testing.T, title string, position int) models.Column {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"position":%d}`, title, position)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.CreateColumn(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var column models.Column
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &column))
	return column
}

func (env *testEnv) createTask(t *testing.T, title, columnID string) models.Task {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"columnId":%q}`, title, columnID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.CreateTask(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func TestCreateUserValidationEnumeratesAllFields(t *testing.T) {
	env := newTestEnv()

	c, rec := env.request(http.MethodPost, `{"role":"Engineer"}`)
	require.NoError(t, env.handler.CreateUser(c))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Name is required")
	assert.Contains(t, body, "Email is required")
	assert.Empty(t, env.store.users)
}

func TestCreateUserAppliesDefaults(t *testing.T) {
	env := newTestEnv()

	user := env.createUser(t, "Ann", "ann@x.com")

	assert.Equal(t, models.RoleEngineer, user.Role)
	assert.Equal(t, "UTC", user.Timezone)
	assert.Equal(t, models.StatusOffline, user.Status)
	assert.NotEmpty(t, user.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "Ann", "ann@x.com")

	c, rec := env.request(http.MethodPost, `{"name":"Ann Again","email":"ann@x.com"}`)
	require.NoError(t, env.handler.CreateUser(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, env.store.users, 1)
}

func TestGetUserNotFound(t *testing.T) {
	env := newTestEnv()

	c, rec := env.requestWithParam(http.MethodGet, "", "id", "missing")
	require.NoError(t, env.handler.GetUser(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrCodeNotFound)
}

func TestUpdateUserStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "Ann", "ann@x.com")

	c, rec := env.requestWithParam(http.MethodPatch, `{"status":"away"}`, "id", user.ID)
	require.NoError(t, env.handler.UpdateUserStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Status must be one of")
}

func TestBoardScenario(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "Ann", "ann@x.com")
	col := env.createColumn(t, "Backlog", 0)
	env.createTask(t, "T1", col.ID)

	c, rec := env.request(http.MethodGet, "")
	require.NoError(t, env.handler.GetBoard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var board []models.BoardColumn
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board, 1)
	assert.Equal(t, "Backlog", board[0].Title)
	require.Len(t, board[0].Tasks, 1)
	assert.Equal(t, "T1", board[0].Tasks[0].Title)
}

func TestBoardIncludesEmptyColumnsAndEveryTaskOnce(t *testing.T) {
	env := newTestEnv()
	backlog := env.createColumn(t, "Backlog", 0)
	progress := env.createColumn(t, "In Progress", 1)
	done := env.createColumn(t, "Done", 2)

	env.createTask(t, "A", backlog.ID)
	env.createTask(t, "B", backlog.ID)
	env.createTask(t, "C", progress.ID)

	c, rec := env.request(http.MethodGet, "")
	require.NoError(t, env.handler.GetBoard(c))

	var board []models.BoardColumn
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board, 3)

	seen := map[string]int{}
	total := 0
	for _, col := range board {
		require.NotNil(t, col.Tasks)
		for _, task := range col.Tasks {
			assert.Equal(t, col.ID, task.ColumnID)
			seen[task.ID]++
			total++
		}
	}
	assert.Equal(t, 3, total)
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %s appeared %d times", id, n)
	}

	assert.Equal(t, done.ID, board[2].ID)
	assert.Empty(t, board[2].Tasks)
}

func TestCreateTaskRecordsActivityForActor(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "Ann", "ann@x.com")
	col := env.createColumn(t, "Backlog", 0)

	body := fmt.Sprintf(`{"title":"T1","columnId":%q,"createdBy":%q}`, col.ID, user.ID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.CreateTask(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, env.store.activities, 1)
	assert.Equal(t, user.ID, env.store.activities[0].UserID)
	assert.Equal(t, "created", env.store.activities[0].Action)
	assert.Equal(t, "T1", env.store.activities[0].Target)
}

func TestUpdateTaskRefreshesUpdatedAtAndKeepsOtherFields(t *testing.T) {
	env := newTestEnv()
	col := env.createColumn(t, "Backlog", 0)
	task := env.createTask(t, "T1", col.ID)

	c, rec := env.requestWithParam(http.MethodPatch, `{"priority":"High"}`, "id", task.ID)
	require.NoError(t, env.handler.UpdateTask(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.Equal(t, "T1", updated.Title)
	assert.Equal(t, task.Description, updated.Description)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt),
		"updatedAt must strictly increase")
}

func TestUpdateTaskRejectsUnknownEnum(t *testing.T) {
	env := newTestEnv()
	col := env.createColumn(t, "Backlog", 0)
	task := env.createTask(t, "T1", col.ID)

	c, rec := env.requestWithParam(http.MethodPatch, `{"priority":"Urgent"}`, "id", task.ID)
	require.NoError(t, env.handler.UpdateTask(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Priority must be one of")
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	env := newTestEnv()
	col := env.createColumn(t, "Backlog", 0)
	task := env.createTask(t, "T1", col.ID)

	for i := 0; i < 2; i++ {
		c, rec := env.requestWithParam(http.MethodDelete, "", "id", task.ID)
		require.NoError(t, env.handler.DeleteTask(c))
		assert.Equal(t, http.StatusOK, rec.Code, "delete attempt %d", i+1)
	}
	assert.Empty(t, env.store.tasks)
}

func TestDeleteColumnCascadesTasks(t *testing.T) {
	env := newTestEnv()
	col := env.createColumn(t, "Backlog", 0)
	other := env.createColumn(t, "Done", 1)
	env.createTask(t, "A", col.ID)
	env.createTask(t, "B", col.ID)
	keep := env.createTask(t, "C", other.ID)

	c, rec := env.requestWithParam(http.MethodDelete, "", "id", col.ID)
	require.NoError(t, env.handler.DeleteColumn(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = env.requestWithParam(http.MethodGet, "", "columnId", col.ID)
	require.NoError(t, env.handler.GetTasksByColumn(c))
	assert.JSONEq(t, "[]", rec.Body.String())

	require.Len(t, env.store.tasks, 1)
	assert.Equal(t, keep.ID, env.store.tasks[0].ID)
}

func TestUpdateTaskViewersReplacesList(t *testing.T) {
	env := newTestEnv()
	col := env.createColumn(t, "Backlog", 0)
	task := env.createTask(t, "T1", col.ID)

	c, rec := env.requestWithParam(http.MethodPatch, `{"viewerIds":["u1","u2"]}`, "id", task.ID)
	require.NoError(t, env.handler.UpdateTaskViewers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = env.requestWithParam(http.MethodPatch, `{"viewerIds":["u3"]}`, "id", task.ID)
	require.NoError(t, env.handler.UpdateTaskViewers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"u3"}, env.store.tasks[0].ActiveViewers)

	// empty list clears the viewers; a missing field is rejected
	c, rec = env.requestWithParam(http.MethodPatch, `{"viewerIds":[]}`, "id", task.ID)
	require.NoError(t, env.handler.UpdateTaskViewers(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.store.tasks[0].ActiveViewers)

	c, rec = env.requestWithParam(http.MethodPatch, `{}`, "id", task.ID)
	require.NoError(t, env.handler.UpdateTaskViewers(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAdrRecordsProposedActivity(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "Ann", "ann@x.com")

	body := fmt.Sprintf(`{"title":"Adopt event sourcing","summary":"why not","authorId":%q}`, user.ID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.CreateAdr(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var adr models.Adr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adr))
	assert.Equal(t, models.AdrProposed, adr.Status)

	require.Len(t, env.store.activities, 1)
	assert.Equal(t, "proposed", env.store.activities[0].Action)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	env := newTestEnv()
	ann := env.createUser(t, "Ann", "ann@x.com")
	bob := env.createUser(t, "Bob", "bob@x.com")

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"userId":%q,"type":"comment","title":"n%d","message":"m"}`, ann.ID, i)
		c, rec := env.request(http.MethodPost, body)
		require.NoError(t, env.handler.CreateNotification(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	body := fmt.Sprintf(`{"userId":%q,"type":"comment","title":"other","message":"m"}`, bob.ID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.CreateNotification(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.requestWithParam(http.MethodPatch, "", "userId", ann.ID)
	require.NoError(t, env.handler.MarkAllNotificationsRead(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = env.requestWithParam(http.MethodGet, "", "userId", ann.ID)
	require.NoError(t, env.handler.GetUnreadCount(c))
	assert.JSONEq(t, `{"count":0}`, rec.Body.String())

	c, rec = env.requestWithParam(http.MethodGet, "", "userId", bob.ID)
	require.NoError(t, env.handler.GetUnreadCount(c))
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())

	for _, n := range env.store.notifications {
		if n.UserID == ann.ID {
			assert.True(t, n.Read)
		}
	}
}

func TestAnalyzePrRequiresDiffOrURL(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "Ann", "ann@x.com")

	body := fmt.Sprintf(`{"authorId":%q}`, user.ID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.AnalyzePr(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "diffContent or prUrl")
	assert.Empty(t, env.store.reviews)
	assert.Zero(t, env.gen.calls)
}

func TestAnalyzePrRequiresAuthor(t *testing.T) {
	env := newTestEnv()

	c, rec := env.request(http.MethodPost, `{"diffContent":"+ added line"}`)
	require.NoError(t, env.handler.AnalyzePr(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "AuthorID is required")
	assert.Empty(t, env.store.reviews)
}

func TestAnalyzePrSuccess(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "Ann", "ann@x.com")
	env.gen.reply = `{"summary":"ok","riskLevel":"Low","checklist":[]}`

	body := fmt.Sprintf(`{"diffContent":"+ added line","title":"My PR","authorId":%q}`, user.ID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.AnalyzePr(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var review models.PrReview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	assert.Equal(t, models.RiskLow, review.RiskLevel)
	assert.Equal(t, "ok", review.Summary)
	assert.Equal(t, "My PR", review.Title)

	assert.True(t, env.gen.lastReq.JSONMode)
	assert.Contains(t, env.gen.lastReq.User, "+ added line")

	require.Len(t, env.store.reviews, 1)
	require.Len(t, env.store.activities, 1)
	assert.Equal(t, "analyzed PR", env.store.activities[0].Action)

	require.Len(t, env.store.notifications, 1)
	notif := env.store.notifications[0]
	assert.Equal(t, user.ID, notif.UserID)
	assert.Equal(t, "pr_review", notif.Type)
	assert.Contains(t, notif.Message, "Low")
	assert.False(t, notif.Read)
}

func TestAnalyzePrAIFailureAbortsBeforePersist(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "Ann", "ann@x.com")
	env.gen.err = fmt.Errorf("%w: connection refused", ai.ErrService)

	body := fmt.Sprintf(`{"diffContent":"+ x","authorId":%q}`, user.ID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.AnalyzePr(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, env.store.reviews)
	assert.Empty(t, env.store.activities)
	assert.Empty(t, env.store.notifications)
}

func TestAnalyzePrUnparseableReplyAbortsBeforePersist(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "Ann", "ann@x.com")
	env.gen.reply = "sorry, cannot help with that"

	body := fmt.Sprintf(`{"diffContent":"+ x","authorId":%q}`, user.ID)
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.AnalyzePr(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, env.store.reviews)
}

func TestChatRelaysHistoryAndMessage(t *testing.T) {
	env := newTestEnv()
	env.gen.reply = "hello there"

	body := `{"message":"hi","history":[{"role":"user","content":"earlier"},{"role":"assistant","content":"yes?"}]}`
	c, rec := env.request(http.MethodPost, body)
	require.NoError(t, env.handler.Chat(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"hello there"}`, rec.Body.String())
	require.Len(t, env.gen.lastReq.History, 2)
	assert.Equal(t, "hi", env.gen.lastReq.User)
	assert.False(t, env.gen.lastReq.JSONMode)
}

func TestGetActivitiesRejectsBadLimit(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	require.NoError(t, env.handler.GetActivities(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
