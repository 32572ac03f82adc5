package notification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocert/notify/pkg/notification"
)

func TestNotificationLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("mark as read sets timestamp", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{Status: notification.StatusUnread}
		n.MarkAsRead()

		assert.Equal(t, notification.StatusRead, n.Status)
		require.NotNil(t, n.ReadAt)
		assert.WithinDuration(t, time.Now(), *n.ReadAt, time.Second)
	})

	t.Run("mark as read is idempotent", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{Status: notification.StatusUnread}
		n.MarkAsRead()
		first := *n.ReadAt

		time.Sleep(5 * time.Millisecond)
		n.MarkAsRead()
		assert.Equal(t, first, *n.ReadAt)
	})

	t.Run("mark as unread clears timestamp", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{Status: notification.StatusUnread}
		n.MarkAsRead()
		n.MarkAsUnread()

		assert.Equal(t, notification.StatusUnread, n.Status)
		assert.Nil(t, n.ReadAt)
	})

	t.Run("unarchive restores read state from read timestamp", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{Status: notification.StatusUnread}
		n.MarkAsRead()
		n.Archive()
		require.Equal(t, notification.StatusArchived, n.Status)
		require.NotNil(t, n.ArchivedAt)

		require.NoError(t, n.Unarchive())
		assert.Equal(t, notification.StatusRead, n.Status)
		assert.Nil(t, n.ArchivedAt)
	})

	t.Run("unarchive restores unread when never read", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{Status: notification.StatusUnread}
		n.Archive()

		require.NoError(t, n.Unarchive())
		assert.Equal(t, notification.StatusUnread, n.Status)
	})

	t.Run("unarchive fails when not archived", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{Status: notification.StatusUnread}
		assert.ErrorIs(t, n.Unarchive(), notification.ErrInvalidState)
	})
}

func TestDefaultExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		priority notification.Priority
		days     int
	}{
		{notification.PriorityUrgent, 7},
		{notification.PriorityHigh, 30},
		{notification.PriorityMedium, 90},
		{notification.PriorityLow, 180},
		{notification.Priority("unknown"), 90},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.priority), func(t *testing.T) {
			t.Parallel()

			expiry := notification.DefaultExpiry(tt.priority, now)
			assert.Equal(t, now.AddDate(0, 0, tt.days), expiry)
		})
	}
}

func TestDeliveryStatus(t *testing.T) {
	t.Parallel()

	t.Run("new status covers every channel", func(t *testing.T) {
		t.Parallel()

		ds := notification.NewDeliveryStatus()
		require.Len(t, ds, len(notification.AllChannels()))
		for _, ch := range notification.AllChannels() {
			cd, ok := ds[ch]
			require.True(t, ok)
			assert.False(t, cd.Attempted)
			assert.False(t, cd.Succeeded)
		}
	})

	t.Run("mark channel result records failure as data", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{Delivery: notification.NewDeliveryStatus()}
		n.MarkChannelResult(notification.ChannelEmail, time.Now(), assert.AnError)

		cd := n.Delivery[notification.ChannelEmail]
		assert.True(t, cd.Attempted)
		assert.False(t, cd.Succeeded)
		assert.Equal(t, assert.AnError.Error(), cd.Error)
		require.NotNil(t, cd.AttemptedAt)
	})
}

func TestNotificationValidate(t *testing.T) {
	t.Parallel()

	valid := func() notification.Notification {
		return notification.Notification{
			RecipientID:   "farmer-1",
			Title:         "Certificate Issued",
			Message:       "Your certificate is ready.",
			Type:          notification.TypeCertificateIssued,
			RecipientType: notification.RecipientFarmer,
			Channels:      []notification.Channel{notification.ChannelInApp},
		}
	}

	t.Run("valid notification passes", func(t *testing.T) {
		t.Parallel()

		n := valid()
		assert.Empty(t, n.Validate())
	})

	t.Run("every violation is reported", func(t *testing.T) {
		t.Parallel()

		n := notification.Notification{}
		ve := n.Validate()

		assert.True(t, ve.Has("title"))
		assert.True(t, ve.Has("message"))
		assert.True(t, ve.Has("type"))
		assert.True(t, ve.Has("recipient_type"))
		assert.True(t, ve.Has("channels"))
		assert.Len(t, ve, 5)
	})

	t.Run("role broadcast requires role", func(t *testing.T) {
		t.Parallel()

		n := valid()
		n.RecipientID = ""
		n.RecipientType = notification.RecipientRoleGroup
		ve := n.Validate()
		require.Len(t, ve, 1)
		assert.True(t, ve.Has("recipient_role"))
	})

	t.Run("personal type requires recipient id", func(t *testing.T) {
		t.Parallel()

		n := valid()
		n.RecipientID = ""
		ve := n.Validate()
		require.Len(t, ve, 1)
		assert.True(t, ve.Has("recipient_id"))
	})

	t.Run("broadcast type forbids recipient id", func(t *testing.T) {
		t.Parallel()

		n := valid()
		n.RecipientType = notification.RecipientAllFarmers
		ve := n.Validate()
		require.Len(t, ve, 1)
		assert.True(t, ve.Has("recipient_id"))
	})

	t.Run("broadcast channels are in-app only", func(t *testing.T) {
		t.Parallel()

		n := valid()
		n.RecipientID = ""
		n.RecipientType = notification.RecipientAllFarmers
		n.Channels = []notification.Channel{notification.ChannelInApp, notification.ChannelEmail}
		ve := n.Validate()
		require.Len(t, ve, 1)
		assert.True(t, ve.Has("channels"))
	})

	t.Run("unknown channel is rejected", func(t *testing.T) {
		t.Parallel()

		n := valid()
		n.Channels = append(n.Channels, notification.Channel("PIGEON"))
		ve := n.Validate()
		require.Len(t, ve, 1)
		assert.True(t, ve.Has("channels"))
	})
}

func TestExternalChannels(t *testing.T) {
	t.Parallel()

	n := notification.Notification{Channels: []notification.Channel{
		notification.ChannelInApp,
		notification.ChannelEmail,
		notification.ChannelSMS,
	}}
	assert.Equal(t,
		[]notification.Channel{notification.ChannelEmail, notification.ChannelSMS},
		n.ExternalChannels())

	inAppOnly := notification.Notification{Channels: []notification.Channel{notification.ChannelInApp}}
	assert.Empty(t, inAppOnly.ExternalChannels())
}
