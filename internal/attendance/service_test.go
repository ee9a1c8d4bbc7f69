package attendance

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestAttendance(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Attendance Module Suite")
}

type mockAttendanceRepository struct {
	records map[string]*Record
	nextID  int64
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{
		records: make(map[string]*Record),
		nextID:  1,
	}
}

func dayKey(studentID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", studentID, date.Format("2006-01-02"))
}

func (m *mockAttendanceRepository) Upsert(record *Record) error {
	key := dayKey(record.StudentID, record.Date)
	if existing, ok := m.records[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = m.nextID
		m.nextID++
	}
	copied := *record
	m.records[key] = &copied
	return nil
}

func (m *mockAttendanceRepository) GetByStudentAndDate(studentID int64, date time.Time) (*Record, error) {
	record, ok := m.records[dayKey(studentID, date)]
	if !ok {
		return nil, ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (m *mockAttendanceRepository) List(filter ListFilter, limit, offset int) ([]*Record, error) {
	var out []*Record
	for _, record := range m.records {
		if filter.StudentID != 0 && record.StudentID != filter.StudentID {
			continue
		}
		if filter.ClassroomID != 0 && record.ClassroomID != filter.ClassroomID {
			continue
		}
		if !filter.From.IsZero() && record.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && record.Date.After(filter.To) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("AttendanceService", func() {
	var (
		repo    *mockAttendanceRepository
		service *Service
	)

	yesterday := time.Now().AddDate(0, 0, -1)

	markDTO := func(entries ...MarkEntryDTO) BulkMarkDTO {
		return BulkMarkDTO{
			ClassroomID: 1,
			Date:        yesterday,
			Entries:     entries,
		}
	}

	ginkgo.BeforeEach(func() {
		repo = newMockAttendanceRepository()
		service = NewService(repo, testLogger())
	})

	ginkgo.Describe("MarkBulk", func() {
		ginkgo.It("should record one row per entry", func() {
			records, err := service.MarkBulk(9, markDTO(
				MarkEntryDTO{StudentID: 1, Status: StatusPresent},
				MarkEntryDTO{StudentID: 2, Status: StatusAbsent},
				MarkEntryDTO{StudentID: 3, Status: StatusLate},
			))

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(records).To(gomega.HaveLen(3))
			gomega.Expect(records[0].MarkedBy).To(gomega.Equal(int64(9)))
		})

		ginkgo.It("should truncate the date to midnight UTC", func() {
			records, err := service.MarkBulk(9, markDTO(
				MarkEntryDTO{StudentID: 1, Status: StatusPresent},
			))

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			day := records[0].Date
			gomega.Expect(day.Hour()).To(gomega.BeZero())
			gomega.Expect(day.Minute()).To(gomega.BeZero())
			gomega.Expect(day.Location()).To(gomega.Equal(time.UTC))
		})

		ginkgo.It("should overwrite an earlier mark for the same day", func() {
			first, err := service.MarkBulk(9, markDTO(
				MarkEntryDTO{StudentID: 1, Status: StatusAbsent},
			))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			// Same student, same day, corrected status.
			second, err := service.MarkBulk(9, markDTO(
				MarkEntryDTO{StudentID: 1, Status: StatusPresent},
			))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(second[0].ID).To(gomega.Equal(first[0].ID))

			stored, err := repo.GetByStudentAndDate(1, first[0].Date)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stored.Status).To(gomega.Equal(StatusPresent))
		})

		ginkgo.It("should reject a future date", func() {
			dto := markDTO(MarkEntryDTO{StudentID: 1, Status: StatusPresent})
			dto.Date = time.Now().AddDate(0, 0, 1)

			_, err := service.MarkBulk(9, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("future"))
		})

		ginkgo.It("should reject an empty entry list", func() {
			_, err := service.MarkBulk(9, markDTO())
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an unknown status", func() {
			_, err := service.MarkBulk(9, markDTO(
				MarkEntryDTO{StudentID: 1, Status: "vacation"},
			))
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ListRecords", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.MarkBulk(9, markDTO(
				MarkEntryDTO{StudentID: 1, Status: StatusPresent},
				MarkEntryDTO{StudentID: 2, Status: StatusExcused},
			))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should filter by student", func() {
			records, err := service.ListRecords(ListFilter{StudentID: 2}, 20, 0)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(records).To(gomega.HaveLen(1))
			gomega.Expect(records[0].Status).To(gomega.Equal(StatusExcused))
		})

		ginkgo.It("should exclude records outside the range", func() {
			records, err := service.ListRecords(ListFilter{
				ClassroomID: 1,
				From:        time.Now().AddDate(0, 0, 1),
			}, 20, 0)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(records).To(gomega.BeEmpty())
		})
	})
})
