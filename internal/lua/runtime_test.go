package lua

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/trimlight/internal/auth"
	"github.com/dokzlo13/trimlight/internal/trimlight"
)

const okEnvelope = `{"code":0,"desc":"Success","payload":{"code":0,"desc":"Success"}}`

type fakeAPI struct {
	mu     sync.Mutex
	bodies map[string][]string
	routes map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *trimlight.Client) {
	t.Helper()
	f := &fakeAPI{
		bodies: make(map[string][]string),
		routes: map[string]string{
			"/v1/oauth/resources/devices": `{"code":0,"desc":"Success","payload":{"total":1,"current":1,
				"data":[{"deviceId":"dev-1","name":"Porch","switchState":0,"connectivity":1}]}}`,
			"/v1/oauth/resources/device/get": `{"code":0,"desc":"Success","payload":{"name":"Porch",
				"daily":[
					{"id":1,"enable":true,"effectId":1,"repetition":1,"startTime":{"hours":8,"minutes":0},"endTime":{"hours":12,"minutes":0}},
					{"id":2,"enable":true,"effectId":2,"repetition":2,"startTime":{"hours":11,"minutes":0},"endTime":{"hours":13,"minutes":0}}
				],
				"calendar":[]}}`,
			"/v1/oauth/resources/device/update":              okEnvelope,
			"/v1/oauth/resources/device/effect/preview":      okEnvelope,
			"/v1/oauth/resources/device/effect/combined/set": okEnvelope,
			"/v1/oauth/resources/device/schedule/daily/add":  okEnvelope,
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies[r.URL.Path] = append(f.bodies[r.URL.Path], string(body))
		resp, ok := f.routes[r.URL.Path]
		f.mu.Unlock()
		if !ok {
			_, _ = io.WriteString(w, `{"code":404,"desc":"no route"}`)
			return
		}
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)

	client := trimlight.NewClient(auth.Credentials{ClientID: "id", Secret: []byte("secret")}, trimlight.WithBaseURL(srv.URL))
	return f, client
}

func (f *fakeAPI) sent(endpoint string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies["/v1/oauth/resources"+endpoint]
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lua")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))
	return path
}

func TestRun_DrivesDevice(t *testing.T) {
	api, client := newFakeAPI(t)
	rt := NewRuntime(client, "")
	defer rt.Close()

	path := writeScript(t, `
local trimlight = require("trimlight")
local log = require("log")

local res, err = trimlight.switch("manual")
assert(err == nil, err)
assert(res.code == 0)

local _, perr = trimlight.preview({mode = 3, speed = 120, brightness = 200, pixel_len = 30, reverse = true})
assert(perr == nil, perr)

local bad, berr = trimlight.preview({mode = 500})
assert(bad == nil)
assert(berr ~= nil)

local _, derr = trimlight.add_daily({effect = 4, start = "18:00", stop = "23:30", repetition = "weekend"})
assert(derr == nil, derr)

local _, cerr = trimlight.set_combined({1, 2}, 30)
assert(cerr == nil, cerr)

local report = trimlight.check_conflicts()
log.info("conflicts", {code = report.code})
conflict_code = report.code
conflict_message = report.message
device_id = trimlight.device()
`)

	require.NoError(t, rt.Run(context.Background(), path))

	assert.Equal(t, lua.LNumber(1), rt.L.GetGlobal("conflict_code"))
	assert.Equal(t, lua.LString("Daily schedules 1 and 2 have overlapping times"), rt.L.GetGlobal("conflict_message"))
	assert.Equal(t, lua.LString("dev-1"), rt.L.GetGlobal("device_id"))

	// Default device is resolved once.
	assert.Len(t, api.sent("/devices"), 1)

	require.Len(t, api.sent("/device/update"), 1)
	assert.JSONEq(t, `{"deviceId":"dev-1","payload":{"switchState":1}}`, api.sent("/device/update")[0])

	require.Len(t, api.sent("/device/effect/preview"), 1)
	assert.JSONEq(t, `{"deviceId":"dev-1","payload":{"category":0,"mode":3,"speed":120,"brightness":200,"pixelLen":30,"reverse":true}}`,
		api.sent("/device/effect/preview")[0])

	require.Len(t, api.sent("/device/schedule/daily/add"), 1)
	assert.JSONEq(t, `{"deviceId":"dev-1","payload":{"id":-1,"enable":true,"effectId":4,"repetition":3,
		"startTime":{"hours":18,"minutes":0},"endTime":{"hours":23,"minutes":30}}}`,
		api.sent("/device/schedule/daily/add")[0])

	require.Len(t, api.sent("/device/effect/combined/set"), 1)
	assert.JSONEq(t, `{"deviceId":"dev-1","payload":{"effectIds":[1,2],"interval":30}}`,
		api.sent("/device/effect/combined/set")[0])
}

func TestRun_ExplicitDevice(t *testing.T) {
	api, client := newFakeAPI(t)
	rt := NewRuntime(client, "dev-9")
	defer rt.Close()

	require.NoError(t, rt.RunString(context.Background(), `
local trimlight = require("trimlight")
local _, err = trimlight.rename("Garage")
assert(err == nil, err)
`))

	assert.Empty(t, api.sent("/devices"))
	require.Len(t, api.sent("/device/update"), 1)
	assert.JSONEq(t, `{"deviceId":"dev-9","payload":{"name":"Garage"}}`, api.sent("/device/update")[0])
}

func TestRun_APIErrorReturnedToScript(t *testing.T) {
	_, client := newFakeAPI(t)
	rt := NewRuntime(client, "dev-1")
	defer rt.Close()

	require.NoError(t, rt.RunString(context.Background(), `
local trimlight = require("trimlight")
local res, err = trimlight.delete_effect(3)
assert(res == nil)
last_error = err
`))
	assert.Equal(t, lua.LString("API error: 404 - no route"), rt.L.GetGlobal("last_error"))
}

func TestRun_ModesCatalog(t *testing.T) {
	_, client := newFakeAPI(t)
	rt := NewRuntime(client, "dev-1")
	defer rt.Close()

	require.NoError(t, rt.RunString(context.Background(), `
local trimlight = require("trimlight")
local found = trimlight.modes("solid fade")
count = #found
first = found[1].name
`))
	assert.Equal(t, lua.LNumber(1), rt.L.GetGlobal("count"))
	assert.Equal(t, lua.LString("Solid Fade"), rt.L.GetGlobal("first"))
}

func TestRun_ScriptError(t *testing.T) {
	_, client := newFakeAPI(t)
	rt := NewRuntime(client, "dev-1")
	defer rt.Close()

	err := rt.Run(context.Background(), writeScript(t, `error("boom")`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	err = rt.Run(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_SleepHonorsCancellation(t *testing.T) {
	_, client := newFakeAPI(t)
	rt := NewRuntime(client, "dev-1")
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := rt.RunString(ctx, `
local utils = require("utils")
local _, err = utils.sleep(10000)
if err then error(err) end
`)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
