package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/domain/payroll"
	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/clock"
)

type fakePayrollRepo struct {
	records map[string]*payroll.Payroll
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]*payroll.Payroll)}
}

func (f *fakePayrollRepo) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	f.nextID++
	p.ID = fmt.Sprintf("pay-%d", f.nextID)
	stored := p
	f.records[p.ID] = &stored
	return p, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	if rec, ok := f.records[id]; ok {
		return *rec, nil
	}
	return payroll.Payroll{}, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Month == month && rec.Year == year {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, rec := range f.records {
		if filter.Month != nil && rec.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && rec.Year != *filter.Year {
			continue
		}
		if filter.PaymentStatus != nil && string(rec.PaymentStatus) != *filter.PaymentStatus {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakePayrollRepo) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) UpdateStatus(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	if _, ok := f.records[p.ID]; !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	stored := p
	f.records[p.ID] = &stored
	return p, nil
}

func (f *fakePayrollRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return payroll.ErrPayrollNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeEmployeeExists struct {
	employee.EmployeeRepository
	ids map[string]bool
}

func (f *fakeEmployeeExists) ExistsByID(ctx context.Context, id string) (bool, error) {
	return f.ids[id], nil
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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(repo *fakePayrollRepo, now time.Time, employeeIDs ...string) payroll.PayrollService {
	ids := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		ids[id] = true
	}
	return NewPayrollService(repo, &fakeEmployeeExists{ids: ids}, clock.Fixed(now))
}

func TestCreatePayrollDerivesNetSalary(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	allowances := dec("300")
	bonus := dec("200")
	deductions := dec("400")
	tax := dec("300")

	resp, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
		Allowances: &allowances,
		Bonus:      &bonus,
		Deductions: &deductions,
		TaxAmount:  &tax,
	})
	require.NoError(t, err)

	assert.True(t, resp.NetSalary.Equal(dec("4800")), "net salary: %s", resp.NetSalary)
	assert.Equal(t, string(payroll.PaymentStatusPending), resp.PaymentStatus)
	assert.Equal(t, string(payroll.PaymentMethodBankTransfer), resp.PaymentMethod)
}

func TestCreatePayrollDefaultsComponentsToZero(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	resp, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(dec("5000")))
}

func TestCreatePayrollDuplicatePeriodConflicts(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	req := payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	}

	_, err := svc.CreatePayroll(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreatePayroll(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrPayrollExists)
}

func TestCreatePayrollUnknownEmployee(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now)
	ctx := authedContext(t, "accounts", "")

	_, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "missing",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreatePayrollRejectsInvalidMonth(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	_, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      13,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	assert.Error(t, err)
}

func TestUpdateStatusPaidStampsPaymentDate(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	repo := newFakePayrollRepo()
	svc := newTestService(repo, now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)

	ref := "TRX-0042"
	resp, err := svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:               created.ID,
		PaymentStatus:    string(payroll.PaymentStatusPaid),
		PaymentReference: &ref,
	})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.PaymentStatusPaid), resp.PaymentStatus)
	require.NotNil(t, resp.PaymentDate)
	assert.Equal(t, "2026-04-01", *resp.PaymentDate)
	require.NotNil(t, resp.PaymentReference)
	assert.Equal(t, "TRX-0042", *resp.PaymentReference)
}

func TestUpdateStatusAllowsReverseTransition(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:            created.ID,
		PaymentStatus: string(payroll.PaymentStatusPaid),
	})
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:            created.ID,
		PaymentStatus: string(payroll.PaymentStatusPending),
	})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PaymentStatusPending), resp.PaymentStatus)
}

func TestGetByEmployeeUnknownEmployee(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now)
	ctx := authedContext(t, "accounts", "")

	_, err := svc.GetByEmployee(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateStatusFailedLeavesPaymentFieldsUntouched(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)

	ref := "TXN-123"
	resp, err := svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:               created.ID,
		PaymentStatus:    string(payroll.PaymentStatusFailed),
		PaymentReference: &ref,
	})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.PaymentStatusFailed), resp.PaymentStatus)
	assert.Nil(t, resp.PaymentDate)
	assert.Nil(t, resp.PaymentReference)
}

func TestUpdateStatusRepayRestampsPaymentDate(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "accounts", "")

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)

	date := "2026-03-15"
	resp, err := svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:            created.ID,
		PaymentStatus: string(payroll.PaymentStatusPaid),
		PaymentDate:   &date,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentDate)
	assert.Equal(t, "2026-03-15", *resp.PaymentDate)

	resp, err = svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:            created.ID,
		PaymentStatus: string(payroll.PaymentStatusPending),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentDate)
	assert.Equal(t, "2026-03-15", *resp.PaymentDate)

	resp, err = svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:            created.ID,
		PaymentStatus: string(payroll.PaymentStatusPaid),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentDate)
	assert.Equal(t, "2026-04-01", *resp.PaymentDate)
}

func TestDeletePayrollPendingOnly(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "admin", "")

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{
		ID:            created.ID,
		PaymentStatus: string(payroll.PaymentStatusPaid),
	})
	require.NoError(t, err)

	err = svc.DeletePayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrCannotDeleteProcessed)
}

func TestDeletePendingPayroll(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")
	ctx := authedContext(t, "admin", "")

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePayroll(ctx, created.ID))

	_, err = svc.GetPayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestEmployeeCannotReadOthersPayroll(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakePayrollRepo(), now, "emp-1")

	created, err := svc.CreatePayroll(authedContext(t, "accounts", ""), payroll.CreatePayrollRequest{
		EmployeeID: "emp-1",
		Month:      3,
		Year:       2026,
		BaseSalary: dec("5000"),
	})
	require.NoError(t, err)

	_, err = svc.GetPayroll(authedContext(t, "employee", "emp-2"), created.ID)
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	_, err = svc.GetByEmployee(authedContext(t, "employee", "emp-2"), "emp-1")
	assert.ErrorIs(t, err, user.ErrAccessDenied)
}
