package auth

import (
	"context"
	"errors"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Fake activity cache that records calls.
type fakeActivityCache struct {
	entries     map[string]bool
	readErr     error
	marked      []string
	invalidated []string
}

func newFakeActivityCache() *fakeActivityCache {
	return &fakeActivityCache{entries: map[string]bool{}}
}

func (c *fakeActivityCache) MarkActive(_ context.Context, tokenID string, _ time.Duration) error {
	c.entries[tokenID] = true
	c.marked = append(c.marked, tokenID)
	return nil
}

func (c *fakeActivityCache) IsActive(_ context.Context, tokenID string) (bool, error) {
	if c.readErr != nil {
		return false, c.readErr
	}
	return c.entries[tokenID], nil
}

func (c *fakeActivityCache) Invalidate(_ context.Context, tokenID string) error {
	delete(c.entries, tokenID)
	c.invalidated = append(c.invalidated, tokenID)
	return nil
}

var _ = ginkgo.Describe("SessionTracker", func() {
	var (
		repo    *mockSessionRepository
		cache   *fakeActivityCache
		tracker *SessionTracker
		ctx     context.Context
		now     time.Time
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		now = time.Now()
		repo = newMockSessionRepository()
		cache = newFakeActivityCache()
		tracker = NewSessionTracker(repo, cache, testLogger())
	})

	ginkgo.Describe("Open", func() {
		ginkgo.It("should reject an expiry at or before the issue time", func() {
			// When
			_, err := tracker.Open(ctx, 1, "tid-1", SessionMetadata{}, now, now)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrSessionExpiryBeforeIssue))
		})

		ginkgo.It("should persist the row and warm the cache", func() {
			// When
			session, err := tracker.Open(ctx, 1, "tid-1", SessionMetadata{DeviceType: "mobile"}, now, now.Add(time.Hour))

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(session.IsActive).To(gomega.BeTrue())
			gomega.Expect(*session.DeviceType).To(gomega.Equal("mobile"))
			gomega.Expect(cache.marked).To(gomega.ContainElement("tid-1"))
		})

		ginkgo.It("should allow concurrent sessions for the same user", func() {
			// When
			_, err := tracker.Open(ctx, 1, "tid-1", SessionMetadata{}, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = tracker.Open(ctx, 1, "tid-2", SessionMetadata{}, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// Then
			sessions, err := tracker.ListActive(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(sessions).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("IsActive", func() {
		ginkgo.It("should fall back to the store when the cache errors", func() {
			// Given
			_, err := tracker.Open(ctx, 1, "tid-1", SessionMetadata{}, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			cache.readErr = errors.New("connection refused")

			// When
			active, err := tracker.IsActive(ctx, "tid-1")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(active).To(gomega.BeTrue())
		})

		ginkgo.It("should report an unknown token as inactive, not as an error", func() {
			// When
			active, err := tracker.IsActive(ctx, "never-issued")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(active).To(gomega.BeFalse())
		})

		ginkgo.It("should report an expired session as inactive", func() {
			// Given a session already past expiry in the store
			_, err := tracker.Open(ctx, 1, "tid-1", SessionMetadata{}, now.Add(-2*time.Hour), now.Add(-time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			cache.entries = map[string]bool{}

			// When
			active, err := tracker.IsActive(ctx, "tid-1")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(active).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Revoke", func() {
		ginkgo.It("should drop the cache entry and stay revoked", func() {
			// Given
			_, err := tracker.Open(ctx, 1, "tid-1", SessionMetadata{}, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			gomega.Expect(tracker.Revoke(ctx, "tid-1")).To(gomega.Succeed())

			// Then
			gomega.Expect(cache.invalidated).To(gomega.ContainElement("tid-1"))
			active, err := tracker.IsActive(ctx, "tid-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(active).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("RevokeAllForUser", func() {
		ginkgo.It("should keep only the excepted session alive", func() {
			// Given
			_, err := tracker.Open(ctx, 1, "tid-keep", SessionMetadata{}, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = tracker.Open(ctx, 1, "tid-drop", SessionMetadata{}, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			revoked, err := tracker.RevokeAllForUser(ctx, 1, "tid-keep")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(revoked).To(gomega.Equal(int64(1)))

			keep, err := tracker.IsActive(ctx, "tid-keep")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(keep).To(gomega.BeTrue())

			drop, err := tracker.IsActive(ctx, "tid-drop")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(drop).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CleanupExpired", func() {
		ginkgo.It("should deactivate rows past their expiry", func() {
			// Given
			_, err := tracker.Open(ctx, 1, "tid-old", SessionMetadata{}, now.Add(-2*time.Hour), now.Add(-time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = tracker.Open(ctx, 1, "tid-new", SessionMetadata{}, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			n, err := tracker.CleanupExpired(ctx)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(n).To(gomega.Equal(int64(1)))
		})
	})
})
