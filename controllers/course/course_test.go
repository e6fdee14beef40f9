package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"trainingmanager/database"
	"trainingmanager/hypermedia"
	"trainingmanager/models"
	courseRoutes "trainingmanager/routers/courseRoutes"
	mediaRoutes "trainingmanager/routers/mediaRoutes"
	userRoutes "trainingmanager/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// A named shared-cache database so every pooled connection sees the
	// same in-memory store.
	dsn := fmt.Sprintf("file:coursetest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app, db)
	mediaRoutes.SetupMediaRoutes(app, db)
	userRoutes.SetupUserRoutes(app, db)
	return app, db
}

// populate seeds the store the same way the legacy client fixtures did:
// three courses, each with three media items and three enrolled users.
func populate(t *testing.T, db *gorm.DB) {
	t.Helper()
	for i := 1; i <= 3; i++ {
		course := models.TrainingCourse{Name: fmt.Sprintf("test-course-%d", i)}
		require.NoError(t, db.Create(&course).Error)

		for a := 1; a <= 3; a++ {
			media := models.CourseMedia{
				URL:      fmt.Sprintf("test-url-%d-%d", i, a),
				Type:     "image",
				CourseID: &course.ID,
			}
			require.NoError(t, db.Create(&media).Error)
		}

		for z := 1; z <= 3; z++ {
			user := models.User{
				FirstName: fmt.Sprintf("test-firstname-%d", z),
				LastName:  fmt.Sprintf("test-lastname-%d", z),
				Email:     fmt.Sprintf("test-email-%d", z),
				IsAdmin:   false,
			}
			require.NoError(t, db.Create(&user).Error)
			rel := models.CourseUserRelation{
				CourseID:      course.ID,
				UserID:        user.ID,
				AddedToCourse: time.Now(),
			}
			require.NoError(t, db.Create(&rel).Error)
		}
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()
	var req *http.Request
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func controls(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	cs, ok := body["@controls"].(map[string]interface{})
	require.True(t, ok, "body should carry @controls")
	return cs
}

func TestCourseCollectionGet(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	resp := doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, hypermedia.MasonType, resp.Header.Get(fiber.HeaderContentType))

	body := decodeBody(t, resp)
	cs := controls(t, body)
	assert.Contains(t, cs, "self")
	assert.Contains(t, cs, "trainingmanager:add-course")
	assert.Contains(t, body, "@namespaces")

	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 3)
	for _, raw := range items {
		item := raw.(map[string]interface{})
		assert.Contains(t, item, "id")
		assert.Contains(t, item, "name")
		// Collection view must not expand sub-lists
		assert.NotContains(t, item, "medialist")
		itemControls := item["@controls"].(map[string]interface{})
		assert.Contains(t, itemControls, "self")
	}
}

func TestCourseCollectionPostWithoutJSON(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/trainingcourses/",
		bytes.NewReader([]byte(`{"name":"test-course-validname"}`)))
	// no content type on purpose
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body, "@error")
	assert.Equal(t, "/api/trainingcourses/", body["resource_url"])
}

func TestCourseCollectionPostFormEncoded(t *testing.T) {
	app, db := newTestApp(t)

	// a parseable non-JSON body must be turned away before the store is
	// touched, not decoded
	for _, raw := range []string{"name=x&coursedatajson=y", "Name=sneaky&CourseDataJSON=z"} {
		req := httptest.NewRequest(fiber.MethodPost, "/api/trainingcourses/",
			bytes.NewReader([]byte(raw)))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
	}

	var count int64
	require.NoError(t, db.Model(&models.TrainingCourse{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCourseCreateRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/",
		fiber.Map{"name": "x", "coursedatajson": "<h5>y</h5>"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	location := resp.Header.Get(fiber.HeaderLocation)
	require.NotEmpty(t, location)

	resp = doJSON(t, app, fiber.MethodGet, location, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "x", body["name"])
	assert.Equal(t, "<h5>y</h5>", body["coursedatajson"])
}

func TestCourseCreateDuplicateName(t *testing.T) {
	app, _ := newTestApp(t)

	payload := fiber.Map{"name": "twice", "coursedatajson": "{}"}
	resp := doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body, "@error")
}

func TestCourseCreateMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/", fiber.Map{"name": "incomplete"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCourseItemGet(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	resp := doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/1/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "test-course-1", body["name"])

	medialist, ok := body["medialist"].([]interface{})
	require.True(t, ok)
	require.Len(t, medialist, 3)
	first := medialist[0].(map[string]interface{})
	assert.Equal(t, "test-url-1-1", first["url"])
	assert.Equal(t, "image", first["type"])
	assert.Contains(t, first, "id")

	cs := controls(t, body)
	for _, name := range []string{
		"self", "collection", "edit",
		"trainingmanager:delete-course",
		"addmedia", "addcourseuser",
		"trainingmanager:coursemedias",
		"trainingmanager:courseusers",
	} {
		assert.Contains(t, cs, name)
	}
	edit := cs["edit"].(map[string]interface{})
	assert.Equal(t, fiber.MethodPut, edit["method"])
	assert.Equal(t, "json", edit["encoding"])
}

func TestCourseItemNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/42/", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	errBody := body["@error"].(map[string]interface{})
	messages := errBody["@messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "42")
}

func TestCoursePutRenameConflict(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	resp := doJSON(t, app, fiber.MethodPut, "/api/trainingcourses/1/",
		fiber.Map{"name": "test-course-2", "coursedatajson": "{}"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// state unchanged after the rejected rename
	resp = doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/1/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "test-course-1", body["name"])
}

func TestCoursePutIsIdempotent(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	payload := fiber.Map{"name": "renamed", "coursedatajson": "<p>new</p>"}
	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, fiber.MethodPut, "/api/trainingcourses/1/", payload)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/1/", nil)
	body := decodeBody(t, resp)
	assert.Equal(t, "renamed", body["name"])
	assert.Equal(t, "<p>new</p>", body["coursedatajson"])
}

func TestCoursePutNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPut, "/api/trainingcourses/9/",
		fiber.Map{"name": "ghost", "coursedatajson": "{}"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseDeleteDetachesMedia(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	var media []models.CourseMedia
	require.NoError(t, db.Where("course_id = ?", 1).Find(&media).Error)
	require.Len(t, media, 3)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/trainingcourses/1/", nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/1/", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// media rows survive with the owning reference nulled
	for _, m := range media {
		resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/coursemedia/%d/", m.ID), nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Nil(t, body["courseid"])
	}

	// enrollment rows are gone
	var count int64
	require.NoError(t, db.Model(&models.CourseUserRelation{}).Where("course_id = ?", 1).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCourseDeleteNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/trainingcourses/5/", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseMediasFlatList(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	resp := doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/1/medias/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 3)
	for a, item := range items {
		assert.Equal(t, fmt.Sprintf("test-url-1-%d", a+1), item["url"])
		assert.Equal(t, "image", item["type"])
		// degraded contract: no ids, no envelope
		assert.NotContains(t, item, "id")
	}
}

func TestCourseMediasMissingCourse(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/9/medias/", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseMediaPostRoundTrip(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	resp := doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/1/medias/",
		fiber.Map{"url": "u", "type": "image"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	location := resp.Header.Get(fiber.HeaderLocation)
	require.NotEmpty(t, location)

	resp = doJSON(t, app, fiber.MethodGet, location, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "u", body["url"])
	assert.Equal(t, float64(1), body["courseid"])
}

func TestCourseMediaPostMissingCourse(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/8/medias/",
		fiber.Map{"url": "u", "type": "image"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseUsersList(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	resp := doJSON(t, app, fiber.MethodGet, "/api/trainingcourses/1/users/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 3)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "test-firstname-1", first["firstname"])
	assert.Contains(t, first, "canModify")
	assert.Contains(t, first, "addedtocourse")
}

func TestCourseUserEnroll(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	user := models.User{FirstName: "new", LastName: "joiner", IsAdmin: false}
	require.NoError(t, db.Create(&user).Error)

	resp := doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/1/users/",
		fiber.Map{"userid": user.ID, "canModify": true})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/api/users/%d/", user.ID), resp.Header.Get(fiber.HeaderLocation))

	// second enrollment of the same user conflicts
	resp = doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/1/users/",
		fiber.Map{"userid": user.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var rel models.CourseUserRelation
	require.NoError(t, db.Where("course_id = ? AND user_id = ?", 1, user.ID).First(&rel).Error)
	assert.True(t, rel.CanModify)
	assert.False(t, rel.AddedToCourse.IsZero())
	assert.Nil(t, rel.CourseCompletionScore)
}

func TestCourseUserEnrollMissingTargets(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	resp := doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/77/users/",
		fiber.Map{"userid": 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/1/users/",
		fiber.Map{"userid": 500})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/trainingcourses/1/users/", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCourseUserEnrollFormEncoded(t *testing.T) {
	app, db := newTestApp(t)
	populate(t, db)

	req := httptest.NewRequest(fiber.MethodPost, "/api/trainingcourses/1/users/",
		bytes.NewReader([]byte("userid=1&canModify=true")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}
