package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/kanbanflow/internal/dto"
	"github.com/yukikurage/kanbanflow/internal/logging"
	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/readmodel"
	"github.com/yukikurage/kanbanflow/internal/repository"
	"github.com/yukikurage/kanbanflow/internal/services"
)

func (suite *HandlerTestSuite) TestUpdateColumnNames() {
	w := suite.do(http.MethodPut, "/api/columns", dto.ColumnNamesRequest{
		ColumnNames: models.ColumnNames{models.TaskStatusDone: "Shipped"},
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Shipped", suite.board.Snapshot().ColumnNames()[models.TaskStatusDone])

	w = suite.do(http.MethodPut, "/api/columns", dto.ColumnNamesRequest{
		ColumnNames: models.ColumnNames{"Archived": "Old"},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSetFilters() {
	w := suite.do(http.MethodPut, "/api/filters", readmodel.FilterState{
		SearchTerm: "landing",
		DueDate:    readmodel.DueDateThisWeek,
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "landing", suite.board.Snapshot().Filters().SearchTerm)

	w = suite.do(http.MethodPut, "/api/filters", readmodel.FilterState{DueDate: "someday"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSetCurrentUser() {
	bob := suite.members()[1]

	w := suite.do(http.MethodPut, "/api/current-user", dto.CurrentUserRequest{MemberID: bob.ID})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	user, _ := suite.board.Snapshot().CurrentUser()
	assert.Equal(suite.T(), bob.ID, user.ID)

	w = suite.do(http.MethodPut, "/api/current-user", dto.CurrentUserRequest{MemberID: "missing"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestRequiresCurrentUser() {
	empty := services.NewBoard(services.Deps{
		Tasks:   repository.NewTaskRepository(suite.gw),
		Members: repository.NewMemberRepository(suite.gw),
		Config:  repository.NewConfigRepository(suite.gw),
		Blobs:   suite.blobs,
		Logger:  logging.Discard(),
	})
	router := NewRouter(empty, logging.Discard())
	alice := suite.members()[0]

	payload, _ := json.Marshal(dto.CreateTaskRequest{Title: "x", AssigneeIDs: []string{alice.ID}, ResponsibleID: alice.ID})
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "UNAUTHORIZED")
}

func (suite *HandlerTestSuite) TestAdminRoutes() {
	suite.createTask(dto.FileDTO{FileName: "a.txt", Data: []byte("a")})

	w := suite.do(http.MethodPost, "/api/admin/clear-tasks", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), suite.board.Snapshot().Tasks())

	w = suite.do(http.MethodPost, "/api/admin/gc", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var collected dto.CollectResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &collected))
	assert.Equal(suite.T(), 1, collected.Removed[models.BlobAttachments])

	w = suite.do(http.MethodPost, "/api/admin/reset", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var board dto.BoardResponse
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &board))
	assert.Len(suite.T(), board.Tasks, 5)
	assert.Len(suite.T(), board.Members, 6)
}
