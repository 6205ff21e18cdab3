package trimlight

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/trimlight/internal/errs"
	"github.com/dokzlo13/trimlight/internal/schedule"
)

const deviceListResponse = `{
	"code": 0,
	"desc": "Success",
	"payload": {
		"total": 1,
		"current": 1,
		"data": [{
			"deviceId": "test123",
			"name": "Test Device",
			"switchState": 1,
			"connectivity": 1,
			"state": 1,
			"fwVersionName": "1.0.0"
		}]
	}
}`

const detailsResponse = `{
	"code": 0,
	"desc": "Success",
	"payload": {
		"name": "Test Device",
		"switchState": 1,
		"connectivity": 1,
		"state": 1,
		"colorOrder": 0,
		"ic": 1,
		"ports": [{"id": 1, "start": 0, "end": 100}],
		"fwVersionName": "1.0.0",
		"effects": [{
			"id": 1,
			"name": "Test Effect",
			"category": 2,
			"mode": 1,
			"speed": 100,
			"brightness": 100,
			"pixelLen": 30,
			"reverse": false
		}],
		"daily": [
			{"id": 1, "enable": true, "effectId": 1, "repetition": 1,
			 "startTime": {"hours": 8, "minutes": 0}, "endTime": {"hours": 12, "minutes": 0}},
			{"id": 2, "enable": true, "effectId": 1, "repetition": 1,
			 "startTime": {"hours": 10, "minutes": 0}, "endTime": {"hours": 14, "minutes": 0}}
		],
		"calendar": [
			{"id": 3, "effectId": 1,
			 "startDate": {"month": 12, "day": 1}, "endDate": {"month": 12, "day": 31},
			 "startTime": {"hours": 17, "minutes": 0}, "endTime": {"hours": 23, "minutes": 0}}
		],
		"overlayEffects": [],
		"currentDatetime": {"year": 24, "month": 3, "day": 9, "weekday": 6, "hours": 12, "minutes": 0, "seconds": 0}
	}
}`

func TestListDevices(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodGet, "/devices", deviceListResponse)

	list, err := api.client().ListDevices(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.Current)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "test123", list.Data[0].DeviceID)
	assert.Equal(t, "Test Device", list.Data[0].Name)
	assert.Equal(t, SwitchManual, list.Data[0].SwitchState)
	assert.Equal(t, Online, list.Data[0].Connectivity)

	req := api.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v1/oauth/resources/devices", req.Path)
	assert.JSONEq(t, `{"page":null}`, req.Body)
}

func TestListDevices_Page(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodGet, "/devices", deviceListResponse)

	page := 2
	_, err := api.client().ListDevices(context.Background(), &page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":2}`, api.last().Body)
}

func TestDefaultDevice(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodGet, "/devices", deviceListResponse)

	id, err := api.client().DefaultDevice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test123", id)
}

func TestDefaultDevice_NoDevices(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodGet, "/devices", `{"code":0,"desc":"Success","payload":{"total":0,"current":0,"data":[]}}`)

	_, err := api.client().DefaultDevice(context.Background())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeviceDetails(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodPost, "/device/get", detailsResponse)

	d, err := api.client().DeviceDetails(context.Background(), "test123")
	require.NoError(t, err)

	assert.Equal(t, "Test Device", d.Name)
	assert.Equal(t, SwitchManual, d.SwitchState)
	require.Len(t, d.Ports, 1)
	assert.Equal(t, Port{ID: 1, Start: 0, End: 100}, d.Ports[0])
	require.Len(t, d.Effects, 1)
	require.NotNil(t, d.Effects[0].PixelLen)
	assert.Equal(t, 30, *d.Effects[0].PixelLen)
	assert.Nil(t, d.Effects[0].Pixels)
	assert.Nil(t, d.CombinedEffect)
	assert.Len(t, d.Daily, 2)
	assert.Len(t, d.Calendar, 1)
	assert.Equal(t, 24, d.CurrentDatetime.Year)

	assert.JSONEq(t, `{
		"deviceId": "test123",
		"currentDate": {"year": 24, "month": 3, "day": 9, "weekday": 6, "hours": 12, "minutes": 30, "seconds": 15}
	}`, api.last().Body)
}

func TestSetSwitchState(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodPost, "/device/update", okResponse)

	res, err := api.client().SetSwitchState(context.Background(), "test123", SwitchManual)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, "Success", res.Desc)
	assert.JSONEq(t, `{"deviceId":"test123","payload":{"switchState":1}}`, api.last().Body)
}

func TestSetSwitchState_Invalid(t *testing.T) {
	api := newMockAPI(t)

	_, err := api.client().SetSwitchState(context.Background(), "test123", SwitchState(3))
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, api.recorded())
}

func TestRenameDevice(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodPost, "/device/update", okResponse)

	_, err := api.client().RenameDevice(context.Background(), "test123", "Porch")
	require.NoError(t, err)
	assert.JSONEq(t, `{"deviceId":"test123","payload":{"name":"Porch"}}`, api.last().Body)
}

func TestSchedules_SingleRead(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodPost, "/device/get", detailsResponse)

	snap, err := api.client().Schedules(context.Background(), "test123")
	require.NoError(t, err)
	assert.Len(t, snap.Daily, 2)
	assert.Len(t, snap.Calendar, 1)
	assert.Len(t, api.recorded(), 1)
}

func TestCheckConflicts(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodPost, "/device/get", detailsResponse)

	report, err := api.client().CheckConflicts(context.Background(), "test123")
	require.NoError(t, err)
	assert.Equal(t, schedule.CodeConflicts, report.Code)
	assert.Equal(t, "Daily schedules 1 and 2 have overlapping times", report.Message())
	assert.Len(t, api.recorded(), 1)
}

func TestCheckConflicts_None(t *testing.T) {
	api := newMockAPI(t)
	api.on(http.MethodPost, "/device/get", `{"code":0,"desc":"Success","payload":{"daily":[],"calendar":[]}}`)

	report, err := api.client().CheckConflicts(context.Background(), "test123")
	require.NoError(t, err)
	assert.Equal(t, schedule.CodeNoConflicts, report.Code)
	assert.Equal(t, "No conflicts found", report.Message())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "Off", SwitchOff.String())
	assert.Equal(t, "Timer Mode", SwitchTimer.String())
	assert.Equal(t, "Unknown", SwitchState(9).String())
	assert.Equal(t, "Online", Online.String())
	assert.Equal(t, "Offline", Offline.String())
}

func TestDeviceDate(t *testing.T) {
	d := deviceDate(testNow)
	assert.Equal(t, DeviceDateTime{Year: 24, Month: 3, Day: 9, Weekday: 6, Hours: 12, Minutes: 30, Seconds: 15}, d)
	assert.True(t, testNow.Equal(d.Time(time.UTC)))
}
