package crm

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hanifm/school-management/internal/core/events"
)

func TestCRM(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "CRM Module Suite")
}

type mockLeadRepository struct {
	leads  map[int64]*Lead
	nextID int64
}

func newMockLeadRepository() *mockLeadRepository {
	return &mockLeadRepository{
		leads:  make(map[int64]*Lead),
		nextID: 1,
	}
}

func (m *mockLeadRepository) Create(lead *Lead) error {
	lead.ID = m.nextID
	m.nextID++
	m.leads[lead.ID] = lead
	return nil
}

func (m *mockLeadRepository) GetByID(id int64) (*Lead, error) {
	lead, ok := m.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	copied := *lead
	return &copied, nil
}

func (m *mockLeadRepository) List(filter ListLeadsFilter, limit, offset int) ([]*Lead, error) {
	var out []*Lead
	for _, lead := range m.leads {
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}

func (m *mockLeadRepository) Update(lead *Lead) error {
	if _, ok := m.leads[lead.ID]; !ok {
		return ErrLeadNotFound
	}
	copied := *lead
	m.leads[lead.ID] = &copied
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("LeadService", func() {
	var (
		repo    *mockLeadRepository
		bus     *events.EventBus
		service *Service
		ctx     context.Context
	)

	email := "parent@example.test"

	newLead := func() *Lead {
		lead, err := service.CreateLead(CreateLeadDTO{
			Name:  "Rina Hartono",
			Email: &email,
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return lead
	}

	moveTo := func(id int64, statuses ...string) {
		for _, status := range statuses {
			_, err := service.MoveLead(id, MoveLeadDTO{Status: status})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		}
	}

	ginkgo.BeforeEach(func() {
		repo = newMockLeadRepository()
		bus = events.NewEventBus(testLogger())
		service = NewService(repo, bus, testLogger())
		ctx = context.Background()
	})

	ginkgo.Describe("CreateLead", func() {
		ginkgo.It("should start a lead in the new state", func() {
			lead := newLead()
			gomega.Expect(lead.Status).To(gomega.Equal(StatusNew))
			gomega.Expect(lead.Source).To(gomega.Equal("walk_in"))
		})

		ginkgo.It("should require a contact channel", func() {
			_, err := service.CreateLead(CreateLeadDTO{Name: "No Contact"})
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("email or a phone"))
		})
	})

	ginkgo.Describe("MoveLead", func() {
		ginkgo.It("should walk the pipeline forward", func() {
			lead := newLead()

			moveTo(lead.ID, StatusContacted, StatusQualified)

			updated, _ := service.GetLead(lead.ID)
			gomega.Expect(updated.Status).To(gomega.Equal(StatusQualified))
		})

		ginkgo.It("should reject skipping a stage", func() {
			lead := newLead()

			// When: jumping straight from new to qualified
			_, err := service.MoveLead(lead.ID, MoveLeadDTO{Status: StatusQualified})

			gomega.Expect(err).To(gomega.MatchError(ErrInvalidTransition))
		})

		ginkgo.It("should reject moving backwards", func() {
			lead := newLead()
			moveTo(lead.ID, StatusContacted)

			_, err := service.MoveLead(lead.ID, MoveLeadDTO{Status: StatusNew})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should allow losing a lead from any open stage", func() {
			lead := newLead()

			_, err := service.MoveLead(lead.ID, MoveLeadDTO{Status: StatusLost})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			updated, _ := service.GetLead(lead.ID)
			gomega.Expect(updated.Status).To(gomega.Equal(StatusLost))
			gomega.Expect(updated.ClosedAt).NotTo(gomega.BeNil())
		})

		ginkgo.It("should never move a closed lead", func() {
			lead := newLead()
			moveTo(lead.ID, StatusLost)

			_, err := service.MoveLead(lead.ID, MoveLeadDTO{Status: StatusContacted})
			gomega.Expect(err).To(gomega.MatchError(ErrLeadAlreadyClosed))
		})

		ginkgo.It("should refuse conversion through the generic move", func() {
			lead := newLead()
			moveTo(lead.ID, StatusContacted, StatusQualified)

			_, err := service.MoveLead(lead.ID, MoveLeadDTO{Status: StatusConverted})
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidTransition))
		})
	})

	ginkgo.Describe("ConvertLead", func() {
		ginkgo.It("should close a qualified lead against a student", func() {
			lead := newLead()
			moveTo(lead.ID, StatusContacted, StatusQualified)

			converted, err := service.ConvertLead(ctx, lead.ID, ConvertLeadDTO{StudentID: 42})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(converted.Status).To(gomega.Equal(StatusConverted))
			gomega.Expect(*converted.ConvertedStudentID).To(gomega.Equal(int64(42)))
			gomega.Expect(converted.ClosedAt).NotTo(gomega.BeNil())
		})

		ginkgo.It("should reject converting an unqualified lead", func() {
			lead := newLead()

			_, err := service.ConvertLead(ctx, lead.ID, ConvertLeadDTO{StudentID: 42})
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidTransition))
		})

		ginkgo.It("should reject converting twice", func() {
			lead := newLead()
			moveTo(lead.ID, StatusContacted, StatusQualified)
			_, err := service.ConvertLead(ctx, lead.ID, ConvertLeadDTO{StudentID: 42})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.ConvertLead(ctx, lead.ID, ConvertLeadDTO{StudentID: 43})
			gomega.Expect(err).To(gomega.MatchError(ErrLeadAlreadyClosed))
		})

		ginkgo.It("should publish a lead converted event", func() {
			lead := newLead()
			moveTo(lead.ID, StatusContacted, StatusQualified)

			received := make(chan events.Event, 1)
			bus.Subscribe(events.EventTypeLeadConverted, func(ctx context.Context, event events.Event) error {
				received <- event
				return nil
			})

			_, err := service.ConvertLead(ctx, lead.ID, ConvertLeadDTO{StudentID: 42})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			var event events.Event
			gomega.Eventually(received).Should(gomega.Receive(&event))
			payload, ok := event.(*events.LeadConvertedEvent)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(payload.LeadID).To(gomega.Equal(lead.ID))
			gomega.Expect(payload.StudentID).To(gomega.Equal(int64(42)))
		})
	})

	ginkgo.Describe("AssignLead", func() {
		ginkgo.It("should record the staff member", func() {
			lead := newLead()

			assigned, err := service.AssignLead(lead.ID, 7)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(*assigned.AssignedTo).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should refuse assignment on a closed lead", func() {
			lead := newLead()
			moveTo(lead.ID, StatusLost)

			_, err := service.AssignLead(lead.ID, 7)
			gomega.Expect(err).To(gomega.MatchError(ErrLeadAlreadyClosed))
		})
	})
})
