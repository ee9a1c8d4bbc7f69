package fee

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hanifm/school-management/internal/core/events"
)

func TestFee(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Fee Module Suite")
}

type mockFeeRepository struct {
	fees     map[int64]*Fee
	payments map[int64][]*Payment
	nextID   int64
}

func newMockFeeRepository() *mockFeeRepository {
	return &mockFeeRepository{
		fees:     make(map[int64]*Fee),
		payments: make(map[int64][]*Payment),
		nextID:   1,
	}
}

func (m *mockFeeRepository) Create(f *Fee) error {
	f.ID = m.nextID
	m.nextID++
	m.fees[f.ID] = f
	return nil
}

func (m *mockFeeRepository) GetByID(id int64) (*Fee, error) {
	f, ok := m.fees[id]
	if !ok {
		return nil, ErrFeeNotFound
	}
	copied := *f
	return &copied, nil
}

func (m *mockFeeRepository) List(filter ListFeesFilter, limit, offset int) ([]*Fee, error) {
	var out []*Fee
	for _, f := range m.fees {
		if filter.StudentID > 0 && f.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (m *mockFeeRepository) UpdateStatus(id int64, status string) error {
	f, ok := m.fees[id]
	if !ok {
		return ErrFeeNotFound
	}
	f.Status = status
	return nil
}

func (m *mockFeeRepository) CreatePayment(p *Payment) error {
	p.ID = m.nextID
	m.nextID++
	m.payments[p.FeeID] = append(m.payments[p.FeeID], p)
	return nil
}

func (m *mockFeeRepository) ListPayments(feeID int64) ([]*Payment, error) {
	return m.payments[feeID], nil
}

func (m *mockFeeRepository) SumPayments(feeID int64) (int64, error) {
	var total int64
	for _, p := range m.payments[feeID] {
		total += p.Amount
	}
	return total, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("FeeService", func() {
	var (
		repo    *mockFeeRepository
		bus     *events.EventBus
		service *Service
		ctx     context.Context
	)

	newFee := func(amount int64) *Fee {
		fee, err := service.CreateFee(CreateFeeDTO{
			StudentID: 1,
			FeeType:   TypeTuition,
			Amount:    amount,
			DueDate:   time.Now().AddDate(0, 1, 0),
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return fee
	}

	ginkgo.BeforeEach(func() {
		repo = newMockFeeRepository()
		bus = events.NewEventBus(testLogger())
		service = NewService(repo, bus, testLogger())
		ctx = context.Background()
	})

	ginkgo.Describe("CreateFee", func() {
		ginkgo.It("should open a fee as unpaid", func() {
			// Given: a valid tuition charge
			fee := newFee(500000)

			// Then: it starts in the unpaid state
			gomega.Expect(fee.Status).To(gomega.Equal(StatusUnpaid))
			gomega.Expect(fee.Currency).To(gomega.Equal("IDR"))
		})

		ginkgo.It("should reject a non-positive amount", func() {
			_, err := service.CreateFee(CreateFeeDTO{
				StudentID: 1,
				FeeType:   TypeTuition,
				Amount:    0,
				DueDate:   time.Now(),
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("amount"))
		})

		ginkgo.It("should reject an unknown fee type", func() {
			_, err := service.CreateFee(CreateFeeDTO{
				StudentID: 1,
				FeeType:   "donation",
				Amount:    100,
				DueDate:   time.Now(),
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("RecordPayment", func() {
		ginkgo.It("should move the fee to partial when payments do not cover the amount", func() {
			// Given: a fee of 1000
			fee := newFee(1000)

			// When: 400 is paid
			payment, err := service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 400, Method: "cash"})

			// Then: the fee is partially settled
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(payment.ReceiptNo).NotTo(gomega.BeEmpty())
			updated, _ := service.GetFee(fee.ID)
			gomega.Expect(updated.Status).To(gomega.Equal(StatusPartial))
		})

		ginkgo.It("should move the fee to paid once payments cover the full amount", func() {
			fee := newFee(1000)

			_, err := service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 400, Method: "cash"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			_, err = service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 600, Method: "bank_transfer"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			updated, _ := service.GetFee(fee.ID)
			gomega.Expect(updated.Status).To(gomega.Equal(StatusPaid))
		})

		ginkgo.It("should mark the fee paid on a single covering payment", func() {
			fee := newFee(1000)

			_, err := service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 1000, Method: "online"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			updated, _ := service.GetFee(fee.ID)
			gomega.Expect(updated.Status).To(gomega.Equal(StatusPaid))
		})

		ginkgo.It("should reject payments against a settled fee", func() {
			fee := newFee(500)
			_, err := service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 500, Method: "cash"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			// When: another payment arrives
			_, err = service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 100, Method: "cash"})

			// Then: it is refused
			gomega.Expect(err).To(gomega.MatchError(ErrFeeAlreadyPaid))
		})

		ginkgo.It("should reject an unknown payment method", func() {
			fee := newFee(500)
			_, err := service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 100, Method: "barter"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should publish a payment recorded event", func() {
			fee := newFee(1000)

			received := make(chan events.Event, 1)
			bus.Subscribe(events.EventTypeFeePaymentRecorded, func(ctx context.Context, event events.Event) error {
				received <- event
				return nil
			})

			_, err := service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 1000, Method: "cash"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			var event events.Event
			gomega.Eventually(received).Should(gomega.Receive(&event))
			payload, ok := event.(*events.FeePaymentRecordedEvent)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(payload.FeeID).To(gomega.Equal(fee.ID))
			gomega.Expect(payload.FeeStatus).To(gomega.Equal(StatusPaid))
		})

		ginkgo.It("should return not found for a missing fee", func() {
			_, err := service.RecordPayment(ctx, 404, 9, RecordPaymentDTO{Amount: 100, Method: "cash"})
			gomega.Expect(err).To(gomega.MatchError(ErrFeeNotFound))
		})
	})

	ginkgo.Describe("ListPayments", func() {
		ginkgo.It("should return every payment against a fee", func() {
			fee := newFee(1000)
			_, _ = service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 300, Method: "cash"})
			_, _ = service.RecordPayment(ctx, fee.ID, 9, RecordPaymentDTO{Amount: 300, Method: "cash"})

			payments, err := service.ListPayments(fee.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(payments).To(gomega.HaveLen(2))
		})
	})
})
