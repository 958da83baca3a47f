package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Baaaki/resume-backend/internal/cache"
	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/export"
	"github.com/Baaaki/resume-backend/internal/handler"
	"github.com/Baaaki/resume-backend/internal/middleware"
	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/Baaaki/resume-backend/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterIntegrationTestSuite struct {
	suite.Suite
	testDB    *testutil.TestDatabase
	testRedis *testutil.TestRedis
	router    *gin.Engine

	adminToken string
	userToken  string
}

func (s *RouterIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.testRedis = testutil.SetupTestRedis(s.T())

	store := repository.NewStore(s.testDB.DB)
	profileCache := cache.NewProfileCache(s.testRedis.Client, time.Minute)

	router, err := handler.NewRouter(handler.RouterDeps{
		DB:             s.testDB.DB,
		Redis:          s.testRedis.Client,
		Auth:           service.NewAuthService(store, testutil.NewTestIssuer(time.Hour, 24*time.Hour)),
		Profiles:       service.NewProfileService(store, profileCache),
		Experiences:    service.NewExperienceService(store, profileCache),
		Educations:     service.NewEducationService(store, profileCache),
		Skills:         service.NewSkillService(store, profileCache),
		Certifications: service.NewCertificationService(store, profileCache),
		RateLimiter: middleware.NewRateLimiter(s.testRedis.Client, middleware.RateLimiterConfig{
			MaxRequests: 1000,
			Window:      time.Minute,
		}),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	s.Require().NoError(err)
	router.GET("/panic", func(*gin.Context) { panic("handler exploded") })
	s.router = router
}

func (s *RouterIntegrationTestSuite) TearDownSuite() {
	s.testRedis.Teardown(s.T())
	s.testDB.Teardown(s.T())
}

func (s *RouterIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
	s.testRedis.Server.FlushAll()

	testutil.InsertUser(s.T(), s.testDB.DB, "admin@example.com", "Admin123456", models.RoleAdmin)
	testutil.InsertUser(s.T(), s.testDB.DB, "user@example.com", "User123456", models.RoleUser)
	s.adminToken = s.login("admin@example.com", "Admin123456").AccessToken
	s.userToken = s.login("user@example.com", "User123456").AccessToken
}

// do sends body as-is when it is a string, otherwise as JSON.
func (s *RouterIntegrationTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		s.Require().NoError(err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterIntegrationTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *RouterIntegrationTestSuite) login(email, password string) dto.AuthResponse {
	w := s.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.AuthResponse
	s.decode(w, &resp)
	return resp
}

func (s *RouterIntegrationTestSuite) createProfile(email string) dto.ProfileResponse {
	w := s.do(http.MethodPost, "/profiles", s.adminToken, gin.H{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     email,
		"title":     "Engineer",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ProfileResponse
	s.decode(w, &resp)
	return resp
}

func (s *RouterIntegrationTestSuite) errorBody(w *httptest.ResponseRecorder) middleware.ErrorResponse {
	var body middleware.ErrorResponse
	s.decode(w, &body)
	return body
}

// Authentication

func (s *RouterIntegrationTestSuite) TestRegister_Created() {
	// Act
	w := s.do(http.MethodPost, "/auth/register", "", gin.H{
		"email":     "new@example.com",
		"password":  "Password123",
		"firstName": "New",
		"lastName":  "User",
	})

	// Assert
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.Equal("Bearer", resp.TokenType)
	s.Equal(time.Hour.Milliseconds(), resp.ExpiresIn)
	s.NotEmpty(resp.AccessToken)
	s.NotEmpty(resp.RefreshToken)
}

func (s *RouterIntegrationTestSuite) TestRegister_ValidationErrors() {
	w := s.do(http.MethodPost, "/auth/register", "", gin.H{"email": "nope", "password": "short", "firstName": " "})

	s.Require().Equal(http.StatusBadRequest, w.Code)
	body := s.errorBody(w)
	s.Equal("Invalid input parameters", body.Message)
	s.Equal("/auth/register", body.Path)
	s.Contains(body.ValidationErrors, "email")
	s.Contains(body.ValidationErrors, "password")
	s.Contains(body.ValidationErrors, "firstName")
	s.Contains(body.ValidationErrors, "lastName")
}

func (s *RouterIntegrationTestSuite) TestRegister_DuplicateEmail() {
	w := s.do(http.MethodPost, "/auth/register", "", gin.H{
		"email":     "user@example.com",
		"password":  "Password123",
		"firstName": "Dup",
		"lastName":  "User",
	})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterIntegrationTestSuite) TestRegister_MalformedJSON() {
	w := s.do(http.MethodPost, "/auth/register", "", `{"email":`)

	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal("Malformed JSON request", s.errorBody(w).Message)
}

func (s *RouterIntegrationTestSuite) TestLogin_WrongPassword() {
	w := s.do(http.MethodPost, "/auth/login", "", gin.H{"email": "admin@example.com", "password": "wrong-password"})

	s.Require().Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Unauthorized", s.errorBody(w).Error)
}

func (s *RouterIntegrationTestSuite) TestRefresh_EchoesRefreshToken() {
	pair := s.login("user@example.com", "User123456")

	w := s.do(http.MethodPost, "/auth/refresh", pair.RefreshToken, nil)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.Equal(pair.RefreshToken, resp.RefreshToken)
	s.NotEqual(pair.AccessToken, resp.AccessToken)
}

func (s *RouterIntegrationTestSuite) TestRefresh_Failures() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/auth/refresh", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/auth/refresh", "garbage", nil).Code)
}

// Authorization

func (s *RouterIntegrationTestSuite) TestProfileWrites_RequireAdmin() {
	body := gin.H{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "title": "Engineer"}

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/profiles", "", body).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/profiles", s.userToken, body).Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/profiles", s.adminToken, body).Code)
}

func (s *RouterIntegrationTestSuite) TestHealth_IsPublic() {
	w := s.do(http.MethodGet, "/health", "", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"UP","components":{"database":"UP","redis":"UP"}}`, w.Body.String())
}

// Profiles

func (s *RouterIntegrationTestSuite) TestPanic_ReturnsErrorBody() {
	// Act
	w := s.do(http.MethodGet, "/panic", s.userToken, nil)

	// Assert
	s.Require().Equal(http.StatusInternalServerError, w.Code)
	body := s.errorBody(w)
	s.Equal(http.StatusInternalServerError, body.Status)
	s.Equal("Internal Server Error", body.Error)
	s.Equal("An unexpected error occurred", body.Message)
	s.Equal("/panic", body.Path)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *RouterIntegrationTestSuite) TestProfileLifecycle() {
	// Arrange
	ada := s.createProfile("ada@example.com")
	grace := s.createProfile("grace@example.com")
	s.True(ada.Active)
	s.Equal("Ada Lovelace", ada.FullName)

	// Duplicate email on create and on update
	dup := s.do(http.MethodPost, "/profiles", s.adminToken, gin.H{
		"firstName": "Ada", "lastName": "Again", "email": "ada@example.com", "title": "Engineer",
	})
	s.Equal(http.StatusConflict, dup.Code)

	inUse := s.do(http.MethodPut, fmt.Sprintf("/profiles/%d", ada.ID), s.adminToken, gin.H{"email": grace.Email})
	s.Require().Equal(http.StatusConflict, inUse.Code)
	s.Contains(s.errorBody(inUse).Message, "already in use")

	// Soft delete
	s.Equal(http.StatusNoContent, s.do(http.MethodPatch, fmt.Sprintf("/profiles/%d/deactivate", ada.ID), s.adminToken, nil).Code)

	var active []dto.ProfileResponse
	s.decode(s.do(http.MethodGet, "/profiles/active", "", nil), &active)
	s.Require().Len(active, 1)
	s.Equal(grace.ID, active[0].ID)

	var fetched dto.ProfileResponse
	w := s.do(http.MethodGet, fmt.Sprintf("/profiles/%d", ada.ID), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &fetched)
	s.False(fetched.Active)

	byEmail := s.do(http.MethodGet, "/profiles/email/grace@example.com", "", nil)
	s.Equal(http.StatusOK, byEmail.Code)

	// Hard delete
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("/profiles/%d", grace.ID), s.adminToken, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/profiles/%d", grace.ID), "", nil).Code)
}

func (s *RouterIntegrationTestSuite) TestProfileUpdate_StaleVersion() {
	profile := s.createProfile("ada@example.com")

	ok := s.do(http.MethodPut, fmt.Sprintf("/profiles/%d", profile.ID), s.adminToken, gin.H{"title": "Mathematician", "version": profile.Version})
	s.Require().Equal(http.StatusOK, ok.Code, ok.Body.String())
	var updated dto.ProfileResponse
	s.decode(ok, &updated)
	s.Equal("Mathematician", updated.Title)
	s.Equal("Lovelace", updated.LastName)
	s.Equal(profile.Version+1, updated.Version)

	stale := s.do(http.MethodPut, fmt.Sprintf("/profiles/%d", profile.ID), s.adminToken, gin.H{"title": "Poet", "version": profile.Version})
	s.Equal(http.StatusConflict, stale.Code)
}

func (s *RouterIntegrationTestSuite) TestProfileUpdate_ClearsLinkWithEmptyString() {
	// Arrange
	profile := s.createProfile("ada@example.com")
	path := fmt.Sprintf("/profiles/%d", profile.ID)
	set := s.do(http.MethodPut, path, s.adminToken, gin.H{"linkedInUrl": "https://linkedin.com/in/ada", "githubUrl": "https://github.com/ada"})
	s.Require().Equal(http.StatusOK, set.Code, set.Body.String())

	// Act
	w := s.do(http.MethodPut, path, s.adminToken, gin.H{"linkedInUrl": ""})

	// Assert
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.ProfileResponse
	s.decode(w, &updated)
	s.Empty(updated.LinkedInURL)
	s.Equal("https://github.com/ada", updated.GithubURL)

	bad := s.do(http.MethodPut, path, s.adminToken, gin.H{"websiteUrl": "ada.dev"})
	s.Require().Equal(http.StatusBadRequest, bad.Code)
	s.Equal("must be a valid URL", s.errorBody(bad).ValidationErrors["websiteUrl"])
}

func (s *RouterIntegrationTestSuite) TestProfile_BadAndUnknownIDs() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/profiles/abc", "", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/profiles/0", "", nil).Code)

	w := s.do(http.MethodGet, "/profiles/999", "", nil)
	s.Require().Equal(http.StatusNotFound, w.Code)
	s.Equal("Profile not found with id: 999", s.errorBody(w).Message)
}

func (s *RouterIntegrationTestSuite) TestFullProfile_CachedAndInvalidated() {
	// Arrange
	profile := s.createProfile("ada@example.com")
	base := fmt.Sprintf("/profiles/%d", profile.ID)
	created := s.do(http.MethodPost, base+"/experiences", s.adminToken, gin.H{
		"companyName":  "Acme",
		"jobTitle":     "Engineer",
		"startDate":    "2020-01-01",
		"current":      true,
		"technologies": []string{"Go", "SQL"},
	})
	s.Require().Equal(http.StatusCreated, created.Code, created.Body.String())

	// Act
	w := s.do(http.MethodGet, base+"/full", "", nil)

	// Assert
	s.Require().Equal(http.StatusOK, w.Code)
	var full dto.FullProfileResponse
	s.decode(w, &full)
	s.Require().Len(full.Experiences, 1)
	s.Equal("Jan 2020 - Present", full.Experiences[0].FormattedDateRange)
	s.Equal([]string{"Go", "SQL"}, full.Experiences[0].Technologies)
	s.NotNil(full.Skills)
	s.True(s.testRedis.Server.Exists(fmt.Sprintf("profile:full:%d", profile.ID)))

	// A child write drops the cached aggregate
	s.Equal(http.StatusCreated, s.do(http.MethodPost, base+"/skills", s.adminToken, gin.H{"name": "Go", "category": "PROGRAMMING_LANGUAGE"}).Code)
	s.False(s.testRedis.Server.Exists(fmt.Sprintf("profile:full:%d", profile.ID)))

	s.decode(s.do(http.MethodGet, base+"/full", "", nil), &full)
	s.Len(full.Skills, 1)
}

func (s *RouterIntegrationTestSuite) TestExport_Workbook() {
	profile := s.createProfile("ada@example.com")

	w := s.do(http.MethodGet, fmt.Sprintf("/profiles/%d/export", profile.ID), "", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(export.ContentType, w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), ".xlsx")
	s.NotEmpty(w.Body.Bytes())
}

// Collections

func (s *RouterIntegrationTestSuite) TestExperience_InvalidDates() {
	profile := s.createProfile("ada@example.com")

	w := s.do(http.MethodPost, fmt.Sprintf("/profiles/%d/experiences", profile.ID), s.adminToken, gin.H{
		"companyName": "Acme",
		"jobTitle":    "Engineer",
		"startDate":   "2022-01-01",
		"endDate":     "2021-01-01",
	})

	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w).ValidationErrors, "endDate")
}

func (s *RouterIntegrationTestSuite) TestChild_ProfileMissing() {
	w := s.do(http.MethodPost, "/profiles/999/educations", s.adminToken, gin.H{"institutionName": "MIT", "degree": "BSc"})

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterIntegrationTestSuite) TestEducations_OngoingFirstAndUpdate() {
	// Arrange
	profile := s.createProfile("ada@example.com")
	base := fmt.Sprintf("/profiles/%d/educations", profile.ID)
	finished := s.do(http.MethodPost, base, s.adminToken, gin.H{
		"institutionName": "MIT", "degree": "BSc", "startDate": "2010-09-01", "graduationDate": "2014-06-01",
	})
	s.Require().Equal(http.StatusCreated, finished.Code, finished.Body.String())
	ongoing := s.do(http.MethodPost, base, s.adminToken, gin.H{"institutionName": "ETH", "degree": "PhD", "startDate": "2020-09-01"})
	s.Require().Equal(http.StatusCreated, ongoing.Code, ongoing.Body.String())
	var edu dto.EducationResponse
	s.decode(finished, &edu)

	// Act
	w := s.do(http.MethodPut, fmt.Sprintf("%s/%d", base, edu.ID), s.adminToken, gin.H{"grade": "A", "version": edu.Version})

	// Assert
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.EducationResponse
	s.decode(w, &updated)
	s.Equal("A", updated.Grade)
	s.Equal("MIT", updated.InstitutionName)

	var edus []dto.EducationResponse
	s.decode(s.do(http.MethodGet, base, "", nil), &edus)
	s.Require().Len(edus, 2)
	s.Equal("ETH", edus[0].InstitutionName)

	tooLong := s.do(http.MethodPut, fmt.Sprintf("%s/%d", base, edu.ID), s.adminToken, gin.H{"grade": "far too long grade"})
	s.Equal(http.StatusBadRequest, tooLong.Code)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("%s/%d", base, edu.ID), s.adminToken, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("%s/%d", base, edu.ID), "", nil).Code)
}

func (s *RouterIntegrationTestSuite) TestSkills_ReorderAndFilter() {
	// Arrange
	profile := s.createProfile("ada@example.com")
	base := fmt.Sprintf("/profiles/%d/skills", profile.ID)
	var ids []uint
	for _, name := range []string{"Go", "Java", "Rust"} {
		w := s.do(http.MethodPost, base, s.adminToken, gin.H{"name": name, "category": "PROGRAMMING_LANGUAGE", "primary": name == "Go"})
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var skill dto.SkillResponse
		s.decode(w, &skill)
		ids = append(ids, skill.ID)
	}

	// Act
	w := s.do(http.MethodPut, base+"/reorder", s.adminToken, gin.H{"orderedIds": []uint{ids[2], ids[0], ids[1]}})

	// Assert
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())
	var skills []dto.SkillResponse
	s.decode(s.do(http.MethodGet, base, "", nil), &skills)
	s.Require().Len(skills, 3)
	s.Equal("Rust", skills[0].Name)
	s.Equal(1, skills[0].DisplayOrder)

	var primary []dto.SkillResponse
	s.decode(s.do(http.MethodGet, base+"/primary", "", nil), &primary)
	s.Require().Len(primary, 1)
	s.Equal("Go", primary[0].Name)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, base+"?category=COOKING", "", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, base+"/reorder", s.adminToken, gin.H{"orderedIds": []uint{}}).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, base+"/reorder", s.adminToken, []uint{ids[0], 9999}).Code)
}

func (s *RouterIntegrationTestSuite) TestCertifications_Endpoints() {
	// Arrange
	profile := s.createProfile("ada@example.com")
	base := fmt.Sprintf("/profiles/%d/certifications", profile.ID)
	today := models.Today()
	expired := today.AddDate(0, -1, 0)
	soon := today.AddDate(0, 0, 20)
	first := testutil.InsertCertification(s.T(), s.testDB.DB, profile.ID, "CKA", "CNCF", today.AddDate(-3, 0, 0), &expired)
	second := testutil.InsertCertification(s.T(), s.testDB.DB, profile.ID, "CKAD", "CNCF", today.AddDate(-2, 0, 0), &soon)

	// Duplicate name and organization
	dup := s.do(http.MethodPost, base, s.adminToken, gin.H{"name": "CKA", "issuingOrganization": "CNCF", "dateObtained": "2023-01-01"})
	s.Equal(http.StatusConflict, dup.Code)

	var certs []dto.CertificationResponse
	s.decode(s.do(http.MethodGet, base+"/expired", "", nil), &certs)
	s.Require().Len(certs, 1)
	s.Equal("CKA", certs[0].Name)
	s.True(certs[0].Expired)

	s.decode(s.do(http.MethodGet, base+"/expiring-soon", "", nil), &certs)
	s.Require().Len(certs, 1)
	s.Equal("CKAD", certs[0].Name)

	s.decode(s.do(http.MethodGet, base+"/organization/cncf", "", nil), &certs)
	s.Len(certs, 2)

	// Certifications take a bare id list
	s.Equal(http.StatusNoContent, s.do(http.MethodPut, base+"/order", s.adminToken, []uint{second.ID, first.ID}).Code)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, base, s.adminToken, nil).Code)
	s.decode(s.do(http.MethodGet, base, "", nil), &certs)
	s.Empty(certs)
}

func TestRouterIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouterIntegrationTestSuite))
}
