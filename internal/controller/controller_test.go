package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schoolscan_backend/internal/config"
	"schoolscan_backend/internal/controller"
	"schoolscan_backend/internal/middleware"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"
	"schoolscan_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// The production schema targets MySQL (enum columns, CURRENT_TIMESTAMP(3)
// defaults), so the handler tests create an equivalent SQLite schema by hand
// and run gorm on top of it.
const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'student',
	class_group_id INTEGER,
	language TEXT DEFAULT 'nl',
	avatar TEXT DEFAULT '',
	disabled BOOLEAN DEFAULT 0,
	last_login DATETIME,
	last_seen DATETIME
);
CREATE TABLE class_groups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	name TEXT NOT NULL,
	school_year TEXT DEFAULT '',
	mentor_id INTEGER
);
CREATE TABLE projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	title TEXT NOT NULL,
	description TEXT DEFAULT '',
	category TEXT DEFAULT '',
	status TEXT DEFAULT 'draft',
	client_name TEXT DEFAULT '',
	class_group_id INTEGER NOT NULL,
	start_date DATETIME,
	end_date DATETIME
);
CREATE TABLE peer_evaluations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	project_id INTEGER NOT NULL,
	evaluator_id INTEGER NOT NULL,
	subject_id INTEGER NOT NULL,
	organiseren INTEGER DEFAULT 0,
	meedoen INTEGER DEFAULT 0,
	zelfvertrouwen INTEGER DEFAULT 0,
	autonomie INTEGER DEFAULT 0,
	feedback TEXT DEFAULT '',
	status TEXT DEFAULT 'pending',
	submitted_at DATETIME
);
CREATE TABLE competency_windows (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	class_group_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	start_date DATETIME,
	end_date DATETIME,
	closed BOOLEAN DEFAULT 0
);
CREATE TABLE competency_scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	window_id INTEGER NOT NULL,
	student_id INTEGER NOT NULL,
	rater_id INTEGER,
	category TEXT NOT NULL,
	kind TEXT,
	score INTEGER NOT NULL,
	note TEXT DEFAULT ''
);
CREATE TABLE project_plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	project_id INTEGER NOT NULL,
	student_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	summary TEXT DEFAULT '',
	attachment_url TEXT DEFAULT '',
	status TEXT DEFAULT 'submitted',
	reviewed_by INTEGER,
	reviewed_at DATETIME
);
CREATE TABLE plan_feedback (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	plan_id INTEGER NOT NULL,
	author_id INTEGER NOT NULL,
	message TEXT NOT NULL
);
CREATE TABLE attendance_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME,
	student_id INTEGER NOT NULL,
	date DATETIME,
	block TEXT DEFAULT '',
	status TEXT DEFAULT 'present',
	note TEXT DEFAULT '',
	recorded_by INTEGER
);
`

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine

	groupA model.ClassGroup
	groupB model.ClassGroup

	mentorA model.User // mentors group A
	mentorB model.User // mentors group B
	anna    model.User // student in group A
	bram    model.User // student in group A
	sanne   model.User // student in group B

	project model.Project // belongs to group A
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(testSchema).Error)

	env := &testEnv{db: db}
	env.seed(t)
	env.buildRouter()
	return env
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()

	e.mentorA = model.User{Name: "Pieter Visser", Email: "pieter@school.test", Role: model.Teacher}
	e.mentorB = model.User{Name: "Els van Dam", Email: "els@school.test", Role: model.Teacher}
	require.NoError(t, e.db.Create(&e.mentorA).Error)
	require.NoError(t, e.db.Create(&e.mentorB).Error)

	e.groupA = model.ClassGroup{Name: "3A", MentorID: e.mentorA.ID}
	e.groupB = model.ClassGroup{Name: "3B", MentorID: e.mentorB.ID}
	require.NoError(t, e.db.Create(&e.groupA).Error)
	require.NoError(t, e.db.Create(&e.groupB).Error)

	e.anna = model.User{Name: "Anna Bakker", Email: "anna@school.test", Role: model.Student, ClassGroupID: &e.groupA.ID}
	e.bram = model.User{Name: "Bram de Vries", Email: "bram@school.test", Role: model.Student, ClassGroupID: &e.groupA.ID}
	e.sanne = model.User{Name: "Sanne Mulder", Email: "sanne@school.test", Role: model.Student, ClassGroupID: &e.groupB.ID}
	require.NoError(t, e.db.Create(&e.anna).Error)
	require.NoError(t, e.db.Create(&e.bram).Error)
	require.NoError(t, e.db.Create(&e.sanne).Error)

	e.project = model.Project{
		Title:        "Webshop voor de bakkerij",
		Status:       model.ProjectActive,
		ClassGroupID: e.groupA.ID,
		StartDate:    time.Now().AddDate(0, -1, 0),
		EndDate:      time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, e.db.Create(&e.project).Error)
}

// buildRouter wires the same repository/service/controller graph the app
// does, minus redis and the HTTP server, and swaps the JWT middleware for a
// header-based identity stub.
func (e *testEnv) buildRouter() {
	userRepo := repository.NewUserRepository(e.db)
	groupRepo := repository.NewGroupRepository(e.db)
	projectRepo := repository.NewProjectRepository(e.db)
	evalRepo := repository.NewPeerEvaluationRepository(e.db)
	competencyRepo := repository.NewCompetencyRepository(e.db)
	attendanceRepo := repository.NewAttendanceRepository(e.db)
	planRepo := repository.NewProjectPlanRepository(e.db)

	cfg := &config.Config{}
	storage := service.NewStorageService(cfg)
	projectSvc := service.NewProjectService(projectRepo)
	evalSvc := service.NewPeerEvaluationService(evalRepo, projectRepo)
	competencySvc := service.NewCompetencyService(competencyRepo, userRepo)
	attendanceSvc := service.NewAttendanceService(attendanceRepo)
	planSvc := service.NewProjectPlanService(planRepo, storage)
	dashboardSvc := service.NewDashboardService(
		userRepo, groupRepo, evalRepo, competencyRepo, planRepo,
		evalSvc, competencySvc, attendanceSvc, planSvc, nil, cfg,
	)

	guard := controller.NewGroupGuard(userRepo, groupRepo)
	projects := controller.NewProjectController(projectSvc, guard)
	evaluations := controller.NewPeerEvaluationController(evalSvc, projectSvc, dashboardSvc, guard)
	competencies := controller.NewCompetencyController(competencySvc, dashboardSvc, guard)
	plans := controller.NewProjectPlanController(planSvc, projectSvc, guard)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set("user", &util.Claims{
			UserID: uint(id),
			Role:   model.UserRole(c.GetHeader("X-User-Role")),
		})
		c.Next()
	})

	router.GET("/projects", projects.List)
	router.GET("/projects/:id/evaluations", evaluations.ListForProject)
	router.POST("/projects/:id/evaluations", evaluations.Submit)
	router.GET("/projects/:id/plan", plans.GetOwn)
	router.POST("/projects/:id/plan", plans.Submit)
	router.GET("/groups/:id/competency-windows", competencies.ListWindows)
	router.POST("/competency-windows/:id/scores", competencies.SubmitScores)

	teacher := router.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	teacher.PUT("/plans/:id/review", plans.Review)

	e.router = router
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type listPayload struct {
	List  json.RawMessage `json:"list"`
	Count int             `json:"count"`
	State string          `json:"state"`
}

func (e *testEnv) do(t *testing.T, as *model.User, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("X-User-ID", strconv.FormatUint(uint64(as.ID), 10))
		req.Header.Set("X-User-Role", string(as.Role))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (e *testEnv) list(t *testing.T, env envelope) listPayload {
	t.Helper()
	var payload listPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	return payload
}

func evaluationBody(subjectID uint) gin.H {
	return gin.H{
		"subjectId":      subjectID,
		"organiseren":    80,
		"meedoen":        70,
		"zelfvertrouwen": 60,
		"autonomie":      90,
		"feedback":       "werkt goed samen",
	}
}

func TestSubmitPlanResubmitConflicts(t *testing.T) {
	env := newTestEnv(t)
	path := fmt.Sprintf("/projects/%d/plan", env.project.ID)

	w, resp := env.do(t, &env.anna, http.MethodPost, path, gin.H{"title": "Plan van aanpak"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusCreated, resp.Code)

	w, resp = env.do(t, &env.anna, http.MethodPost, path, gin.H{"title": "Plan van aanpak v2"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, util.ErrPlanExists.Error(), resp.Message)
}

func TestSubmitPlanRejectedCanBeSuperseded(t *testing.T) {
	env := newTestEnv(t)
	plan := model.ProjectPlan{
		ProjectID: env.project.ID,
		StudentID: env.anna.ID,
		Title:     "Plan van aanpak",
		Status:    model.PlanRejected,
	}
	require.NoError(t, env.db.Create(&plan).Error)

	w, _ := env.do(t, &env.anna, http.MethodPost,
		fmt.Sprintf("/projects/%d/plan", env.project.ID), gin.H{"title": "Plan van aanpak v2"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSubmitPlanValidation(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, &env.anna, http.MethodPost,
		fmt.Sprintf("/projects/%d/plan", env.project.ID), gin.H{"summary": "geen titel"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NotEmpty(t, resp.Message)
}

func TestSubmitPlanOutsideOwnGroupForbidden(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, &env.sanne, http.MethodPost,
		fmt.Sprintf("/projects/%d/plan", env.project.ID), gin.H{"title": "Plan van aanpak"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListEvaluationsBoundToOwnGroup(t *testing.T) {
	env := newTestEnv(t)
	path := fmt.Sprintf("/projects/%d/evaluations", env.project.ID)

	w, _ := env.do(t, &env.anna, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, &env.sanne, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, &env.mentorB, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitEvaluationOutsideOwnGroupForbidden(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, &env.sanne, http.MethodPost,
		fmt.Sprintf("/projects/%d/evaluations", env.project.ID), evaluationBody(env.bram.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitEvaluationSubjectMustShareGroup(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, &env.anna, http.MethodPost,
		fmt.Sprintf("/projects/%d/evaluations", env.project.ID), evaluationBody(env.sanne.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "not a member")
}

func TestSubmitEvaluationWithinGroupSucceeds(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, &env.anna, http.MethodPost,
		fmt.Sprintf("/projects/%d/evaluations", env.project.ID), evaluationBody(env.bram.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusCreated, resp.Code)

	var count int64
	env.db.Model(&model.PeerEvaluation{}).Where("project_id = ?", env.project.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitScoresWindowBoundToOwnGroup(t *testing.T) {
	env := newTestEnv(t)
	window := model.CompetencyWindow{
		ClassGroupID: env.groupA.ID,
		Name:         "Scan 1",
		StartDate:    time.Now().AddDate(0, 0, -1),
		EndDate:      time.Now().AddDate(0, 0, 1),
	}
	require.NoError(t, env.db.Create(&window).Error)

	body := gin.H{"scores": []gin.H{{"category": "organiseren", "score": 3}}}
	path := fmt.Sprintf("/competency-windows/%d/scores", window.ID)

	w, _ := env.do(t, &env.sanne, http.MethodPost, path, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, &env.anna, http.MethodPost, path, body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListWindowsOtherGroupForbidden(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, &env.sanne, http.MethodGet,
		fmt.Sprintf("/groups/%d/competency-windows", env.groupA.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewPlanRequiresMentor(t *testing.T) {
	env := newTestEnv(t)
	plan := model.ProjectPlan{
		ProjectID: env.project.ID,
		StudentID: env.anna.ID,
		Title:     "Plan van aanpak",
		Status:    model.PlanSubmitted,
	}
	require.NoError(t, env.db.Create(&plan).Error)

	path := fmt.Sprintf("/plans/%d/review", plan.ID)
	body := gin.H{"approve": true}

	w, _ := env.do(t, &env.mentorB, http.MethodPut, path, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, &env.anna, http.MethodPut, path, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, &env.mentorA, http.MethodPut, path, body)
	require.Equal(t, http.StatusOK, w.Code)

	var stored model.ProjectPlan
	require.NoError(t, env.db.First(&stored, plan.ID).Error)
	assert.Equal(t, model.PlanApproved, stored.Status)
}

func TestProjectListFilterRecomputesCount(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 9; i++ {
		title := fmt.Sprintf("Moestuin sprint %d", i+1)
		if i < 2 {
			title = fmt.Sprintf("Webshop sprint %d", i+1)
		}
		require.NoError(t, env.db.Create(&model.Project{
			Title:        title,
			Status:       model.ProjectActive,
			ClassGroupID: env.groupA.ID,
			StartDate:    time.Now(),
		}).Error)
	}

	// 10 projects in total, 3 matching "webshop" (the seeded one included)
	w, resp := env.do(t, &env.anna, http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload := env.list(t, resp)
	assert.Equal(t, 10, payload.Count)
	assert.Equal(t, "ready", payload.State)

	_, resp = env.do(t, &env.anna, http.MethodGet, "/projects?q=webshop", nil)
	payload = env.list(t, resp)
	assert.Equal(t, 3, payload.Count)
	assert.Equal(t, "ready", payload.State)

	_, resp = env.do(t, &env.anna, http.MethodGet, "/projects", nil)
	payload = env.list(t, resp)
	assert.Equal(t, 10, payload.Count)
}

func TestProjectListEmptyState(t *testing.T) {
	env := newTestEnv(t)

	_, resp := env.do(t, &env.anna, http.MethodGet, "/projects?q=zonnepanelen", nil)
	payload := env.list(t, resp)
	assert.Equal(t, 0, payload.Count)
	assert.Equal(t, "empty", payload.State)
}

func TestMissingIdentityUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, nil, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
