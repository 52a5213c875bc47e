package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/tutorlink/internal/app/auth"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/repositories"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
)

// fakeClassStore is an in-memory ClassStore.
type fakeClassStore struct {
	classes map[int64]*models.Class
	nextID  int64

	accepted []*repositories.ClassDetails
	grouped  map[int64][]*repositories.ClassDetails
	pending  []*repositories.ClassDetails
	requests []*repositories.ClassDetails
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{
		classes: make(map[int64]*models.Class),
		nextID:  1,
		grouped: make(map[int64][]*repositories.ClassDetails),
	}
}

func (f *fakeClassStore) CreateClass(_ context.Context, class *models.Class) (*models.Class, error) {
	stored := *class
	stored.ID = f.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	f.classes[stored.ID] = &stored
	f.nextID++
	return &stored, nil
}

func (f *fakeClassStore) GetClassByID(_ context.Context, id int64) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	copied := *class
	return &copied, nil
}

// ResolveClassIfPending mimics the conditional update in the real
// repository: it only succeeds while the stored class is still PENDING.
func (f *fakeClassStore) ResolveClassIfPending(_ context.Context, id int64, status models.ClassStatus, classLink *string, durationMinutes *int) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok || class.Status != models.ClassStatusPending {
		return nil, apperrors.ErrClassAlreadyFinal
	}
	class.Status = status
	class.ClassLink = classLink
	class.DurationMinutes = durationMinutes
	class.UpdatedAt = time.Now().UTC()
	copied := *class
	return &copied, nil
}

func (f *fakeClassStore) AcceptedClassesForParticipant(_ context.Context, _ int64) ([]*repositories.ClassDetails, error) {
	return f.accepted, nil
}

func (f *fakeClassStore) GroupClassesForCourses(_ context.Context, courseIDs []int64) ([]*repositories.ClassDetails, error) {
	var out []*repositories.ClassDetails
	for _, id := range courseIDs {
		out = append(out, f.grouped[id]...)
	}
	return out, nil
}

func (f *fakeClassStore) GroupClassesForCourse(_ context.Context, courseID int64) ([]*repositories.ClassDetails, error) {
	return f.grouped[courseID], nil
}

func (f *fakeClassStore) PendingRequestsForTutor(_ context.Context, _ int64) ([]*repositories.ClassDetails, error) {
	return f.pending, nil
}

func (f *fakeClassStore) RequestsForStudent(_ context.Context, _ int64) ([]*repositories.ClassDetails, error) {
	return f.requests, nil
}

type fakeMembershipStore struct {
	enrolled map[int64][]int64
	taught   map[int64][]int64
}

func (f *fakeMembershipStore) EnrolledCourseIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.enrolled[userID], nil
}

func (f *fakeMembershipStore) TaughtCourseIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.taught[userID], nil
}

// fakeUserReader backs the authorization service in tests.
type fakeUserReader struct {
	users map[int64]*models.User
}

func (f *fakeUserReader) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeCourseReader struct {
	courses  map[int64]*models.Course
	enrolled map[int64]map[int64]bool
	tutors   map[int64]map[int64]bool
}

func (f *fakeCourseReader) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeCourseReader) IsEnrolled(_ context.Context, courseID, userID int64) (bool, error) {
	return f.enrolled[courseID][userID], nil
}

func (f *fakeCourseReader) IsCourseTutor(_ context.Context, courseID, userID int64) (bool, error) {
	return f.tutors[courseID][userID], nil
}

const (
	testStudentID = int64(10)
	testTutorID   = int64(20)
	testCourseID  = int64(1)
)

type classFixture struct {
	store   *fakeClassStore
	service ClassService
}

func newClassFixture() *classFixture {
	users := &fakeUserReader{users: map[int64]*models.User{
		testStudentID: {ID: testStudentID, RoleType: models.RoleStudent, IsActive: true},
		testTutorID:   {ID: testTutorID, RoleType: models.RoleTutor, IsActive: true, IsApproved: true},
	}}
	courses := &fakeCourseReader{
		courses: map[int64]*models.Course{
			testCourseID: {ID: testCourseID, Name: "Calculus I", Status: models.CourseStatusPublished},
		},
		enrolled: map[int64]map[int64]bool{testCourseID: {testStudentID: true}},
		tutors:   map[int64]map[int64]bool{testCourseID: {testTutorID: true}},
	}

	store := newFakeClassStore()
	memberships := &fakeMembershipStore{
		enrolled: map[int64][]int64{testStudentID: {testCourseID}},
		taught:   map[int64][]int64{testTutorID: {testCourseID}},
	}
	authz := auth.NewAuthorizationService(users, courses)
	return &classFixture{
		store:   store,
		service: NewClassService(store, memberships, authz),
	}
}

func (f *classFixture) requestClass(t *testing.T) *dto.ClassResponse {
	t.Helper()
	resp, err := f.service.RequestClass(context.Background(), testStudentID, &dto.CreateClassRequest{
		CourseID: testCourseID,
		TutorID:  testTutorID,
		Time:     time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return resp
}

func TestRequestClass(t *testing.T) {
	f := newClassFixture()

	resp := f.requestClass(t)

	assert.Equal(t, models.ClassStatusPending, resp.Status)
	assert.Equal(t, models.ClassTypeIndividual, resp.Type)
	require.NotNil(t, resp.StudentID)
	assert.Equal(t, testStudentID, *resp.StudentID)
	assert.Equal(t, testTutorID, resp.TutorID)
	assert.Nil(t, resp.ClassLink, "a pending request carries no meeting link")
}

func TestRequestClassGuards(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateClassRequest
		student int64
		wantErr error
	}{
		{
			name:    "unknown course",
			req:     dto.CreateClassRequest{CourseID: 99, TutorID: testTutorID, Time: time.Now().Add(time.Hour)},
			student: testStudentID,
			wantErr: apperrors.ErrCourseNotFound,
		},
		{
			name:    "target is not a tutor",
			req:     dto.CreateClassRequest{CourseID: testCourseID, TutorID: testStudentID, Time: time.Now().Add(time.Hour)},
			student: testStudentID,
			wantErr: apperrors.ErrNotTutor,
		},
		{
			name:    "unknown tutor",
			req:     dto.CreateClassRequest{CourseID: testCourseID, TutorID: 99, Time: time.Now().Add(time.Hour)},
			student: testStudentID,
			wantErr: apperrors.ErrUserNotFound,
		},
		{
			name:    "student not enrolled",
			req:     dto.CreateClassRequest{CourseID: testCourseID, TutorID: testTutorID, Time: time.Now().Add(time.Hour)},
			student: 77,
			wantErr: apperrors.ErrNotEnrolled,
		},
		{
			name:    "time in the past",
			req:     dto.CreateClassRequest{CourseID: testCourseID, TutorID: testTutorID, Time: time.Now().Add(-time.Hour)},
			student: testStudentID,
			wantErr: apperrors.ErrClassTimeInPast,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClassFixture()
			_, err := f.service.RequestClass(context.Background(), tt.student, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequestClassRejectsUnapprovedTutor(t *testing.T) {
	f := newClassFixture()
	users := &fakeUserReader{users: map[int64]*models.User{
		testStudentID: {ID: testStudentID, RoleType: models.RoleStudent, IsActive: true},
		testTutorID:   {ID: testTutorID, RoleType: models.RoleTutor, IsActive: true, IsApproved: false},
	}}
	courses := &fakeCourseReader{
		courses: map[int64]*models.Course{testCourseID: {ID: testCourseID}},
		tutors:  map[int64]map[int64]bool{testCourseID: {testTutorID: true}},
	}
	f.service = NewClassService(f.store, &fakeMembershipStore{}, auth.NewAuthorizationService(users, courses))

	_, err := f.service.RequestClass(context.Background(), testStudentID, &dto.CreateClassRequest{
		CourseID: testCourseID,
		TutorID:  testTutorID,
		Time:     time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrTutorNotApproved)
}

func TestRespondToRequestAccept(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	resp, err := f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{
		Status:    string(models.ClassStatusAccepted),
		ClassLink: "https://meet.example.com/abc",
		Duration:  90,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ClassStatusAccepted, resp.Status)
	require.NotNil(t, resp.ClassLink)
	assert.Equal(t, "https://meet.example.com/abc", *resp.ClassLink)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, 90, *resp.DurationMinutes)
}

func TestRespondToRequestAcceptDefaultsDuration(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	resp, err := f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{
		Status:    string(models.ClassStatusAccepted),
		ClassLink: "https://meet.example.com/abc",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, DefaultClassDurationMinutes, *resp.DurationMinutes)
}

func TestRespondToRequestReject(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	// rejecting needs no meeting link
	resp, err := f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{
		Status: string(models.ClassStatusRejected),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusRejected, resp.Status)
	assert.Nil(t, resp.ClassLink)
}

func TestRespondToRequestGuards(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	accept := &dto.RespondClassRequest{
		Status:    string(models.ClassStatusAccepted),
		ClassLink: "https://meet.example.com/abc",
	}

	t.Run("unknown class", func(t *testing.T) {
		_, err := f.service.RespondToRequest(context.Background(), testTutorID, 999, accept)
		assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
	})

	t.Run("wrong tutor", func(t *testing.T) {
		_, err := f.service.RespondToRequest(context.Background(), 777, created.ID, accept)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown status value", func(t *testing.T) {
		_, err := f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{Status: "MAYBE"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidClassStatus)
	})

	t.Run("accept without meeting link", func(t *testing.T) {
		_, err := f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{
			Status: string(models.ClassStatusAccepted),
		})
		assert.ErrorIs(t, err, apperrors.ErrClassLinkRequired)
	})
}

func TestRespondToRequestIsFinal(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	_, err := f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{
		Status: string(models.ClassStatusRejected),
	})
	require.NoError(t, err)

	// second resolution of the same request must conflict, never flip the state
	_, err = f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{
		Status:    string(models.ClassStatusAccepted),
		ClassLink: "https://meet.example.com/abc",
	})
	assert.ErrorIs(t, err, apperrors.ErrClassAlreadyFinal)

	stored, err := f.store.GetClassByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusRejected, stored.Status)
}

func TestRespondToRequestOwnershipBeforeFinality(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	_, err := f.service.RespondToRequest(context.Background(), testTutorID, created.ID, &dto.RespondClassRequest{
		Status: string(models.ClassStatusRejected),
	})
	require.NoError(t, err)

	// a non-owner must not learn whether the request is settled
	_, err = f.service.RespondToRequest(context.Background(), 777, created.ID, &dto.RespondClassRequest{
		Status:    string(models.ClassStatusAccepted),
		ClassLink: "https://meet.example.com/abc",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.NotErrorIs(t, err, apperrors.ErrClassAlreadyFinal)
}

func TestResolveClassIfPendingSingleWinner(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	// of two resolutions keyed on PENDING, only the first lands
	_, err := f.store.ResolveClassIfPending(context.Background(), created.ID, models.ClassStatusRejected, nil, nil)
	require.NoError(t, err)

	_, err = f.store.ResolveClassIfPending(context.Background(), created.ID, models.ClassStatusAccepted, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrClassAlreadyFinal)
}

func TestCreateGroupClass(t *testing.T) {
	f := newClassFixture()

	resp, err := f.service.CreateGroupClass(context.Background(), testTutorID, testCourseID, &dto.CreateGroupClassRequest{
		Time:      time.Now().Add(24 * time.Hour),
		Duration:  45,
		ClassLink: "https://meet.example.com/group",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ClassTypeGroup, resp.Type)
	assert.Equal(t, models.ClassStatusAccepted, resp.Status, "group classes skip the request handshake")
	assert.Nil(t, resp.StudentID)
	require.NotNil(t, resp.ClassLink)
}

func TestCreateGroupClassGuards(t *testing.T) {
	f := newClassFixture()

	t.Run("not the course tutor", func(t *testing.T) {
		_, err := f.service.CreateGroupClass(context.Background(), 777, testCourseID, &dto.CreateGroupClassRequest{
			Time:      time.Now().Add(time.Hour),
			Duration:  45,
			ClassLink: "https://meet.example.com/group",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotCourseTutor)
	})

	t.Run("missing meeting link", func(t *testing.T) {
		_, err := f.service.CreateGroupClass(context.Background(), testTutorID, testCourseID, &dto.CreateGroupClassRequest{
			Time:     time.Now().Add(time.Hour),
			Duration: 45,
		})
		assert.ErrorIs(t, err, apperrors.ErrClassLinkRequired)
	})

	t.Run("time in the past", func(t *testing.T) {
		_, err := f.service.CreateGroupClass(context.Background(), testTutorID, testCourseID, &dto.CreateGroupClassRequest{
			Time:      time.Now().Add(-time.Hour),
			Duration:  45,
			ClassLink: "https://meet.example.com/group",
		})
		assert.ErrorIs(t, err, apperrors.ErrClassTimeInPast)
	})
}

func TestGetClassVisibility(t *testing.T) {
	f := newClassFixture()
	created := f.requestClass(t)

	_, err := f.service.GetClass(context.Background(), 777, models.RoleStudent, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := f.service.GetClass(context.Background(), testStudentID, models.RoleStudent, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	// admins see everything
	_, err = f.service.GetClass(context.Background(), 1, models.RoleAdmin, created.ID)
	assert.NoError(t, err)
}

func detailsAt(id int64, status models.ClassStatus, classType models.ClassType, at time.Time) *repositories.ClassDetails {
	return &repositories.ClassDetails{
		Class: models.Class{
			ID:          id,
			CourseID:    testCourseID,
			TutorID:     testTutorID,
			Type:        classType,
			Status:      status,
			ScheduledAt: &at,
		},
		CourseName: "Calculus I",
		TutorName:  "Jane Tutor",
	}
}

func TestGetScheduleMergesAndSorts(t *testing.T) {
	f := newClassFixture()

	later := time.Now().Add(72 * time.Hour)
	sooner := time.Now().Add(24 * time.Hour)
	between := time.Now().Add(48 * time.Hour)

	f.store.accepted = []*repositories.ClassDetails{
		detailsAt(1, models.ClassStatusAccepted, models.ClassTypeIndividual, later),
		detailsAt(2, models.ClassStatusAccepted, models.ClassTypeIndividual, sooner),
	}
	f.store.grouped[testCourseID] = []*repositories.ClassDetails{
		detailsAt(3, models.ClassStatusAccepted, models.ClassTypeGroup, between),
	}

	schedule, err := f.service.GetSchedule(context.Background(), testStudentID, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, schedule.Classes, 3)

	assert.Equal(t, int64(2), schedule.Classes[0].ID)
	assert.Equal(t, int64(3), schedule.Classes[1].ID)
	assert.Equal(t, int64(1), schedule.Classes[2].ID)
	for i := 1; i < len(schedule.Classes); i++ {
		assert.False(t, schedule.Classes[i].ScheduledAt.Before(schedule.Classes[i-1].ScheduledAt))
	}
}

func TestGetScheduleEmptyMemberships(t *testing.T) {
	f := newClassFixture()

	schedule, err := f.service.GetSchedule(context.Background(), 555, models.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, schedule.Classes)
}

func TestListGroupClassesRequiresCourse(t *testing.T) {
	f := newClassFixture()

	_, err := f.service.ListGroupClasses(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	f.store.grouped[testCourseID] = []*repositories.ClassDetails{
		detailsAt(3, models.ClassStatusAccepted, models.ClassTypeGroup, time.Now().Add(time.Hour)),
	}
	resp, err := f.service.ListGroupClasses(context.Background(), testCourseID)
	require.NoError(t, err)
	assert.Len(t, resp.Classes, 1)
}
