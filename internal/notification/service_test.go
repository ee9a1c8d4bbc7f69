package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hanifm/school-management/internal/core/events"
)

func TestNotification(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Notification Module Suite")
}

type mockNotificationRepository struct {
	mu            sync.Mutex
	notifications map[int64]*Notification
	nextID        int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{
		notifications: make(map[int64]*Notification),
		nextID:        1,
	}
}

func (m *mockNotificationRepository) create(n *Notification) {
	n.ID = m.nextID
	m.nextID++
	copied := *n
	m.notifications[n.ID] = &copied
}

func (m *mockNotificationRepository) Create(n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.create(n)
	return nil
}

func (m *mockNotificationRepository) CreateBatch(batch []*Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range batch {
		m.create(n)
	}
	return nil
}

func (m *mockNotificationRepository) ListForUser(userID int64, unreadOnly bool, limit, offset int) ([]*Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead() {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNotificationRepository) CountUnread(userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepository) MarkRead(id, userID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return ErrNotificationNotFound
	}
	n.ReadAt = &at
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(userID int64, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var marked int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead() {
			n.ReadAt = &at
			marked++
		}
	}
	return marked, nil
}

func (m *mockNotificationRepository) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notifications)
}

type mockUserDirectory struct {
	byRole map[string][]int64
}

func (m *mockUserDirectory) ListActiveUserIDs(role string) ([]int64, error) {
	if role == "" {
		var all []int64
		for _, ids := range m.byRole {
			all = append(all, ids...)
		}
		return all, nil
	}
	return m.byRole[role], nil
}

type mockStudentLookup struct {
	userByStudent map[int64]int64
}

func (m *mockStudentLookup) UserIDForStudent(studentID int64) (*int64, error) {
	userID, ok := m.userByStudent[studentID]
	if !ok {
		return nil, nil
	}
	return &userID, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("NotificationService", func() {
	var (
		repo     *mockNotificationRepository
		users    *mockUserDirectory
		students *mockStudentLookup
		service  *Service
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = newMockNotificationRepository()
		users = &mockUserDirectory{byRole: map[string][]int64{
			"staff":   {10, 11},
			"teacher": {20},
		}}
		students = &mockStudentLookup{userByStudent: map[int64]int64{5: 50}}
		service = NewService(repo, users, students, testLogger())
		ctx = context.Background()
	})

	ginkgo.Describe("Broadcast", func() {
		ginkgo.It("should reach every active user when no role is given", func() {
			recipients, err := service.Broadcast(BroadcastDTO{
				Title: "Term starts Monday",
				Body:  "Classes resume on Monday morning.",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(recipients).To(gomega.Equal(3))
		})

		ginkgo.It("should narrow the audience to one role", func() {
			recipients, err := service.Broadcast(BroadcastDTO{
				Title: "Staff meeting",
				Body:  "Friday at 3pm.",
				Role:  "staff",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(recipients).To(gomega.Equal(2))

			list, _ := service.ListForUser(20, false, 20, 0)
			gomega.Expect(list).To(gomega.BeEmpty())
		})

		ginkgo.It("should send nothing to an empty audience", func() {
			recipients, err := service.Broadcast(BroadcastDTO{
				Title: "Parent evening",
				Body:  "Details to follow.",
				Role:  "parent",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(recipients).To(gomega.BeZero())
		})

		ginkgo.It("should require a title", func() {
			_, err := service.Broadcast(BroadcastDTO{Body: "No title."})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("MarkRead", func() {
		ginkgo.It("should mark the caller's own notification", func() {
			n, err := service.Notify(20, "Hello", "Body", "general")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(service.MarkRead(n.ID, 20)).To(gomega.Succeed())

			count, _ := service.CountUnread(20)
			gomega.Expect(count).To(gomega.BeZero())
		})

		ginkgo.It("should not expose another user's notification", func() {
			n, err := service.Notify(20, "Hello", "Body", "general")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			err = service.MarkRead(n.ID, 10)
			gomega.Expect(err).To(gomega.MatchError(ErrNotificationNotFound))
		})
	})

	ginkgo.Describe("MarkAllRead", func() {
		ginkgo.It("should clear the unread backlog", func() {
			for i := 0; i < 3; i++ {
				_, err := service.Notify(20, "Hello", "Body", "general")
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
			}

			marked, err := service.MarkAllRead(20)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(marked).To(gomega.Equal(int64(3)))

			count, _ := service.CountUnread(20)
			gomega.Expect(count).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("event handlers", func() {
		var bus *events.EventBus

		ginkgo.BeforeEach(func() {
			bus = events.NewEventBus(testLogger())
			service.RegisterEventHandlers(bus)
		})

		ginkgo.It("should notify the student's account on a fee payment", func() {
			err := bus.Publish(ctx, events.NewFeePaymentRecordedEvent(1, 5, 1, 150000, "paid"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Eventually(func() int64 {
				count, _ := service.CountUnread(50)
				return count
			}).Should(gomega.Equal(int64(1)))

			list, _ := service.ListForUser(50, true, 20, 0)
			gomega.Expect(list[0].Kind).To(gomega.Equal("fee"))
		})

		ginkgo.It("should stay quiet for a student without a linked account", func() {
			err := bus.Publish(ctx, events.NewFeePaymentRecordedEvent(1, 999, 1, 150000, "partial"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Consistently(repo.total).Should(gomega.BeZero())
		})

		ginkgo.It("should tell the staff about a converted lead", func() {
			err := bus.Publish(ctx, events.NewLeadConvertedEvent(3, 5))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Eventually(func() int64 {
				count, _ := service.CountUnread(10)
				return count
			}).Should(gomega.Equal(int64(1)))

			list, _ := service.ListForUser(11, true, 20, 0)
			gomega.Expect(list).To(gomega.HaveLen(1))
			gomega.Expect(list[0].Kind).To(gomega.Equal("crm"))
		})
	})
})
