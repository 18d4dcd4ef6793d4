package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"view", "export", "stats"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "geomap", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestCommand_Flags(t *testing.T) {
	for _, name := range []string{"districts", "neighborhoods", "markers"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}

	zoom := viewCmd.Flags().Lookup("zoom")
	require.NotNil(t, zoom)
	assert.Equal(t, "0", zoom.DefValue)

	out := exportCmd.Flags().Lookup("output")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
	assert.NotNil(t, exportCmd.Flags().Lookup("geographic"))

	width := statsCmd.Flags().Lookup("width")
	require.NotNil(t, width)
	assert.Equal(t, "1280", width.DefValue)
}

func TestExportAndStatsCommands(t *testing.T) {
	dir := writeFixtures(t)
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	t.Setenv("GEOMAP_LOG_LEVEL", "error")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"export", "--markers", "schools.csv", "-o", "out.geojson"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "out.geojson")

	data, err := os.ReadFile(filepath.Join(dir, "out.geojson"))
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	// 2 regions, 1 neighborhood, 3 cells, 3 markers
	assert.Len(t, fc.Features, 9)

	buf.Reset()
	rootCmd.SetArgs([]string{"stats", "--markers", "schools.csv"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "regions:        2")
	assert.Contains(t, buf.String(), "cells:          3")
	// two square prisms of 8 vertices and 12 triangles each
	assert.Contains(t, buf.String(), "mesh vertices:  16")
	assert.Contains(t, buf.String(), "mesh triangles: 24")
	assert.Contains(t, buf.String(), "Kadikoy")
}
