package main

import (
	"io"

	"github.com/monado-tools/libmonado-go/internal/cli"
	"github.com/monado-tools/libmonado-go/internal/mndtest"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

const libPath = "/usr/lib/libmonado.so"

func testRuntime() *mndtest.Runtime {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{
		{ID: 1, Name: "xrgears", State: mnd.ClientPrimaryApp | mnd.ClientSessionActive},
		{ID: 2, Name: "overlay-app", State: mnd.ClientSessionOverlay},
	}
	rt.Devices = []mndtest.Device{
		{NameID: 1, Name: "HMD", Brightness: 0.5},
		{NameID: 4, Name: "Left Controller"},
	}
	rt.Origins = []mndtest.Origin{
		{ID: 0, Name: "lighthouse", Offset: mnd.Pose{Orientation: mnd.Quaternion{W: 1}}},
	}
	rt.Roles = map[string]int32{"head": 0, "left": 1}
	return rt
}

func testOptions(rt *mndtest.Runtime) cli.Options {
	return cli.Options{LogOutput: io.Discard, Loader: rt.Loader()}
}
