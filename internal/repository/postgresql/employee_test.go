package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tausif-btb/cbl-erp/internal/domain/attendance"
	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
)

var testDB *database.DB

// testInit connects to the test database, skipping the suite when no
// TEST_DATABASE_URL is configured.
func testInit(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testDB != nil {
		return
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func truncateTables(t *testing.T, ctx context.Context) {
	t.Helper()

	for _, table := range []string{"payrolls", "attendances", "users", "employees"} {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func testEmployee(suffix string) employee.Employee {
	return employee.Employee{
		FirstName:      "Test",
		LastName:       "Employee" + suffix,
		Email:          fmt.Sprintf("test-%s-%d@example.com", suffix, time.Now().UnixNano()),
		Phone:          "+8801712345678",
		DateOfBirth:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		EmploymentType: employee.EmploymentTypeFullTime,
		Department:     "Engineering",
		Position:       "Engineer",
		JoiningDate:    time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		Salary:         decimal.NewFromInt(5000),
	}
}

func TestEmployeeRepositoryCRUD(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, testEmployee("a"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
	assert.True(t, got.Salary.Equal(decimal.NewFromInt(5000)))

	newPosition := "Senior Engineer"
	err = repo.Update(ctx, created.ID, employee.UpdateEmployeeRequest{Position: &newPosition})
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", got.Position)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepositoryDuplicateEmail(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewEmployeeRepository(testDB)

	first := testEmployee("dup")
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := testEmployee("dup2")
	second.Email = first.Email
	_, err = repo.Create(ctx, second)
	assert.Error(t, err, "duplicate email must hit the unique constraint")
}

func attendanceRecord(employeeID string, day, checkIn time.Time) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        day,
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	}
}

func TestAttendanceUniquePerDay(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	emp, err := NewEmployeeRepository(testDB).Create(ctx, testEmployee("att"))
	require.NoError(t, err)

	repo := NewAttendanceRepository(testDB)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(9 * time.Hour)

	_, err = repo.Create(ctx, attendanceRecord(emp.ID, day, now))
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendanceRecord(emp.ID, day, now))
	assert.Error(t, err, "second row for the same day must hit the unique constraint")
}
