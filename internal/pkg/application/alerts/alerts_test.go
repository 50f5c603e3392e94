package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-water-level/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-water-level/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func testSetup(t *testing.T) (context.Context, *is.I, AlertEngine, *messaging.MsgContextMock) {
	is := is.New(t)
	ctx := context.Background()

	s, err := storage.New(ctx, storage.NewSQLiteConnector(ctx))
	is.NoErr(err)
	is.NoErr(s.Initialize(ctx))
	t.Cleanup(s.Close)

	m := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	return ctx, is, New(s, m), m
}

func TestRaiseAndAcknowledge(t *testing.T) {
	ctx, is, svc, m := testSetup(t)

	id, err := svc.Raise(ctx, "sensor-2", "Mettur Dam", types.SeverityWarning, 48.2, MessageWarning)
	is.NoErr(err)

	warnings, err := svc.List(ctx, "", types.SeverityWarning)
	is.NoErr(err)
	is.Equal(len(warnings), 1)
	is.Equal(warnings[0].ID, id)
	is.Equal(warnings[0].Status, types.AlertStatusActive)
	is.Equal(warnings[0].SiteName, "Mettur Dam")

	acked, err := svc.Acknowledge(ctx, id)
	is.NoErr(err)
	is.Equal(acked.Status, types.AlertStatusAcknowledged)
	is.True(!acked.AcknowledgedAt.Before(acked.Timestamp.Truncate(time.Millisecond)))

	active, err := svc.List(ctx, types.AlertStatusActive, "")
	is.NoErr(err)
	is.Equal(len(active), 0)

	is.Equal(len(m.PublishOnTopicCalls()), 2)
}

func TestAcknowledgeTwiceKeepsFirstTimestamp(t *testing.T) {
	ctx, is, svc, m := testSetup(t)

	id, err := svc.Raise(ctx, "sensor-1", "Hogenakkal", types.SeverityDanger, 51, MessageDanger)
	is.NoErr(err)

	first, err := svc.Acknowledge(ctx, id)
	is.NoErr(err)

	time.Sleep(5 * time.Millisecond)

	second, err := svc.Acknowledge(ctx, id)
	is.NoErr(err)
	is.Equal(second.Status, types.AlertStatusAcknowledged)
	is.Equal(second.AcknowledgedAt.UnixMilli(), first.AcknowledgedAt.UnixMilli())

	// raised and acknowledged once
	is.Equal(len(m.PublishOnTopicCalls()), 2)
}

func TestAcknowledgeUnknownAlert(t *testing.T) {
	ctx, is, svc, _ := testSetup(t)

	_, err := svc.Acknowledge(ctx, "nosuchalert")
	is.True(errors.Is(err, ErrAlertNotFound))

	_, err = svc.Get(ctx, "nosuchalert")
	is.True(errors.Is(err, ErrAlertNotFound))
}

func TestRaiseValidation(t *testing.T) {
	ctx, is, svc, _ := testSetup(t)

	_, err := svc.Raise(ctx, "sensor-1", "site", types.Severity("Critical"), 51, "")
	is.True(errors.Is(err, types.ErrValidation))

	_, err = svc.Raise(ctx, "", "site", types.SeverityWarning, 51, "")
	is.True(errors.Is(err, types.ErrValidation))
}

func TestStatusFiltersPartitionAlerts(t *testing.T) {
	ctx, is, svc, _ := testSetup(t)

	ids := []string{}
	for i, sev := range []types.Severity{types.SeverityWarning, types.SeverityDanger, types.SeverityWarning, types.SeverityDanger} {
		id, err := svc.Raise(ctx, "sensor-1", "site", sev, float64(45+i), MessageFor(sev))
		is.NoErr(err)
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	_, err := svc.Acknowledge(ctx, ids[1])
	is.NoErr(err)
	_, err = svc.Acknowledge(ctx, ids[2])
	is.NoErr(err)

	all, err := svc.List(ctx, "", "")
	is.NoErr(err)
	active, err := svc.List(ctx, types.AlertStatusActive, "")
	is.NoErr(err)
	acknowledged, err := svc.List(ctx, types.AlertStatusAcknowledged, "")
	is.NoErr(err)

	is.Equal(len(all), 4)
	is.Equal(len(active)+len(acknowledged), len(all))

	seen := map[string]bool{}
	for _, a := range active {
		seen[a.ID] = true
	}
	for _, a := range acknowledged {
		is.True(!seen[a.ID])
	}

	is.Equal(all[0].ID, ids[3]) // newest first

	activeDanger, err := svc.List(ctx, types.AlertStatusActive, types.SeverityDanger)
	is.NoErr(err)
	is.Equal(len(activeDanger), 1)
	is.Equal(activeDanger[0].ID, ids[3])

	_, err = svc.List(ctx, types.AlertStatus("Closed"), "")
	is.True(errors.Is(err, types.ErrValidation))
}

func TestLatestActive(t *testing.T) {
	ctx, is, svc, _ := testSetup(t)

	_, found, err := svc.LatestActive(ctx, "sensor-1")
	is.NoErr(err)
	is.True(!found)

	_, err = svc.Raise(ctx, "sensor-1", "site", types.SeverityWarning, 48, MessageWarning)
	is.NoErr(err)
	dangerID, err := svc.Raise(ctx, "sensor-1", "site", types.SeverityDanger, 50, MessageDanger)
	is.NoErr(err)

	latest, found, err := svc.LatestActive(ctx, "sensor-1")
	is.NoErr(err)
	is.True(found)
	is.Equal(latest.ID, dangerID)

	_, found, err = svc.LatestActive(ctx, "")
	is.NoErr(err)
	is.True(!found)

	count, err := svc.CountActive(ctx)
	is.NoErr(err)
	is.Equal(count, 2)
}

func TestAlertFor(t *testing.T) {
	is := is.New(t)

	tests := []struct {
		previous, current types.Status
		severity          types.Severity
		raise             bool
	}{
		{types.StatusNormal, types.StatusWarning, types.SeverityWarning, true},
		{types.StatusNormal, types.StatusDanger, types.SeverityDanger, true},
		{types.StatusWarning, types.StatusDanger, types.SeverityDanger, true},
		{types.StatusOffline, types.StatusWarning, types.SeverityWarning, true},
		{types.StatusOffline, types.StatusDanger, types.SeverityDanger, true},
		{types.StatusWarning, types.StatusWarning, "", false},
		{types.StatusDanger, types.StatusDanger, "", false},
		{types.StatusDanger, types.StatusWarning, "", false},
		{types.StatusWarning, types.StatusNormal, "", false},
		{types.StatusNormal, types.StatusNormal, "", false},
		{types.StatusNormal, types.StatusOffline, "", false},
		{types.StatusOffline, types.StatusNormal, "", false},
	}

	for _, tc := range tests {
		severity, raise := AlertFor(tc.previous, tc.current)
		is.Equal(raise, tc.raise)
		is.Equal(severity, tc.severity)
	}
}

func TestSuppress(t *testing.T) {
	is := is.New(t)

	latest := types.Alert{Severity: types.SeverityWarning, Status: types.AlertStatusActive}

	is.True(Suppress(latest, true, types.SeverityWarning))
	is.True(!Suppress(latest, true, types.SeverityDanger))
	is.True(!Suppress(latest, false, types.SeverityWarning))
}

func TestMessagesAreStoredWithAlert(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	s, err := storage.New(ctx, storage.NewSQLiteConnector(ctx))
	is.NoErr(err)
	is.NoErr(s.Initialize(ctx))
	defer s.Close()

	svc := New(s, &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return errors.New("broker unavailable")
		},
	})

	// a failing broker does not fail the raise
	id, err := svc.Raise(ctx, "sensor-1", "site", types.SeverityDanger, 50, MessageFor(types.SeverityDanger))
	is.NoErr(err)

	a, err := svc.Get(ctx, id)
	is.NoErr(err)
	is.Equal(a.Message, MessageDanger)
}
