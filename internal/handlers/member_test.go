package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/kanbanflow/internal/dto"
	"github.com/yukikurage/kanbanflow/internal/models"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func (suite *HandlerTestSuite) TestCreateMember_WithAvatar() {
	w := suite.do(http.MethodPost, "/api/members", dto.MemberRequest{
		Name:   "Grace Hopper",
		Email:  "grace@example.com",
		Avatar: pngHeader,
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	var member models.Member
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &member))
	assert.Equal(suite.T(), models.RoleMember, member.Role)
	assert.NotEmpty(suite.T(), member.AvatarBlobKey)
	assert.Empty(suite.T(), member.AvatarURL)

	w = suite.do(http.MethodGet, "/api/members/"+member.ID+"/avatar", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "image/png", w.Header().Get("Content-Type"))

	stored, ok := suite.board.GetMemberByID(member.ID)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), member.AvatarBlobKey, stored.AvatarBlobKey)
	assert.Len(suite.T(), suite.members(), 7)
}

func (suite *HandlerTestSuite) TestCreateMember_InvalidEmail() {
	w := suite.do(http.MethodPost, "/api/members", dto.MemberRequest{Name: "Grace", Email: "grace"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Len(suite.T(), suite.members(), 6)
}

func (suite *HandlerTestSuite) TestGetMember() {
	bob := suite.members()[1]

	w := suite.do(http.MethodGet, "/api/members/"+bob.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Bob Williams")

	w = suite.do(http.MethodGet, "/api/members/missing", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateMember() {
	bob := suite.members()[1]

	w := suite.do(http.MethodPut, "/api/members/"+bob.ID, dto.MemberRequest{
		Name:      "Robert Williams",
		Role:      models.RoleAdmin,
		AvatarURL: "https://example.com/bob.png",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	updated, _ := suite.board.GetMemberByID(bob.ID)
	assert.Equal(suite.T(), "Robert Williams", updated.Name)
	assert.True(suite.T(), updated.IsAdmin())
	assert.Nil(suite.T(), updated.Email)

	w = suite.do(http.MethodGet, "/api/members/"+bob.ID+"/avatar", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteMember() {
	members := suite.members()

	w := suite.do(http.MethodDelete, "/api/members/"+members[1].ID, nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "reassign")

	w = suite.do(http.MethodDelete, "/api/members/"+members[0].ID, nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	w = suite.do(http.MethodDelete, "/api/members/"+members[5].ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), suite.members(), 5)
}
