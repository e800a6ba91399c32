package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tausif-btb/cbl-erp/internal/domain/attendance"
	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/pkg/clock"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	k := f.key(att.EmployeeID, att.Date)
	if _, ok := f.records[k]; ok {
		return attendance.Attendance{}, errors.New("duplicate key value violates unique constraint")
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	stored := att
	f.records[k] = &stored
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if rec, ok := f.records[f.key(employeeID, date)]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	k := f.key(att.EmployeeID, att.Date)
	if _, ok := f.records[k]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	stored := att
	f.records[k] = &stored
	return att, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.RangeFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		day := rec.Date.Format("2006-01-02")
		if filter.StartDate != nil && day < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && day > *filter.EndDate {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	byUserID  map[string]string
}

func newFakeEmployeeRepo(ids ...string) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		employees: make(map[string]employee.Employee),
		byUserID:  make(map[string]string),
	}
	for _, id := range ids {
		f.employees[id] = employee.Employee{ID: id}
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	if id, ok := f.byUserID[userID]; ok {
		return f.employees[id], nil
	}
	return employee.Employee{}, employee.ErrEmployeeRecordNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := f.employees[id]
	return ok, nil
}

func (f *fakeEmployeeRepo) GetWithBirthdayOn(ctx context.Context, month, day int) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetWithAppraisalDue(ctx context.Context, from, to string) ([]employee.Employee, error) {
	return nil, nil
}

func authedContext(t *testing.T, role, employeeID string) context.Context {
	t.Helper()

	claims := map[string]interface{}{
		"user_id": "user-1",
		"role":    role,
		"type":    "access",
	}
	if employeeID != "" {
		claims["employee_id"] = employeeID
	}

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(attRepo *fakeAttendanceRepo, empRepo *fakeEmployeeRepo, now time.Time) attendance.AttendanceService {
	return NewAttendanceService(attRepo, empRepo, clock.Fixed(now))
}

func TestCheckInCreatesPresentRecord(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "employee", "emp-1")

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{Location: []float64{106.8, -6.2}})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "2026-03-02 09:00:00", *resp.CheckInTime)
	assert.Equal(t, []float64{106.8, -6.2}, resp.CheckInLoc)
	assert.Nil(t, resp.CheckOutTime)
	assert.Zero(t, resp.WorkHours)
}

func TestCheckInDefaultsToUnknownLocation(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "employee", "emp-1")

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, resp.CheckInLoc)
}

func TestCheckInTwiceSameDayConflicts(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "employee", "emp-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "employee", "emp-1")

	_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)
}

func TestCheckOutDerivesWorkHours(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo("emp-1")
	ctx := authedContext(t, "employee", "emp-1")

	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := newTestService(attRepo, empRepo, checkIn).CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	checkOut := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	resp, err := newTestService(attRepo, empRepo, checkOut).CheckOut(ctx, attendance.CheckOutRequest{Location: []float64{106.8, -6.2}})
	require.NoError(t, err)

	assert.Equal(t, 8.5, resp.WorkHours)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "2026-03-02 17:30:00", *resp.CheckOutTime)
}

func TestCheckOutTwiceConflicts(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo("emp-1")
	ctx := authedContext(t, "employee", "emp-1")

	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := newTestService(attRepo, empRepo, checkIn).CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	svc := newTestService(attRepo, empRepo, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckInNextDayStartsNewRecord(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo("emp-1")
	ctx := authedContext(t, "employee", "emp-1")

	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := newTestService(attRepo, empRepo, day1).CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	resp, err := newTestService(attRepo, empRepo, day2).CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", resp.Date)
}

func TestCheckInRequiresEmployeeIDForNonEmployeeRoles(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "hr", "")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrEmployeeIDRequired)
}

func TestCheckInForUnknownEmployee(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "hr", "")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "missing"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeCannotCheckInForOthers(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1", "emp-2"), now)
	ctx := authedContext(t, "employee", "emp-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-2"})
	assert.ErrorIs(t, err, employee.ErrUnauthorized)
}

func TestCheckInRejectsBadLocation(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "employee", "emp-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{Location: []float64{200, 0}})
	assert.Error(t, err)
}

func TestGetByEmployeeRequiresBothRangeBounds(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"), now)
	ctx := authedContext(t, "hr", "")

	start := "2026-03-01"
	_, err := svc.GetByEmployee(ctx, "emp-1", attendance.RangeFilter{StartDate: &start})
	assert.Error(t, err)
}

func TestGetByEmployeeFiltersRange(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo("emp-1")
	ctx := authedContext(t, "employee", "emp-1")

	for day := 1; day <= 3; day++ {
		now := time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
		_, err := newTestService(attRepo, empRepo, now).CheckIn(ctx, attendance.CheckInRequest{})
		require.NoError(t, err)
	}

	start, end := "2026-03-02", "2026-03-03"
	svc := newTestService(attRepo, empRepo, time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC))
	resp, err := svc.GetByEmployee(ctx, "", attendance.RangeFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}
