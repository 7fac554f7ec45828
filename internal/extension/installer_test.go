package extension

import (
	"context"
	"errors"
	"testing"

	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/agentx-labs/assetctl/internal/registry"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	versions map[string]string
	fail     map[string]error
	fetched  []string
}

func (f *fakeRegistry) FetchExtension(_ context.Context, name string) (*registry.Extension, error) {
	f.fetched = append(f.fetched, name)
	if err := f.fail[name]; err != nil {
		return nil, err
	}
	return &registry.Extension{Name: name, FullName: name + " ext", Version: f.versions[name], ObjectTypes: []string{name + "::Thing"}}, nil
}

func TestInstall_MissingOnly(t *testing.T) {
	reg := &fakeRegistry{versions: map[string]string{"A": "1.0.0", "B": "2.0.0", "C": "3.1.0"}}
	p := project.New("game")
	require.NoError(t, p.SetExtension(project.Extension{Name: "A", Version: "1.0.0"}))
	require.NoError(t, p.SetExtension(project.Extension{Name: "C", Version: "3.0.0"}))

	report := &registry.Report{
		Required: []registry.ExtensionHeader{
			{Identifier: "A", Installed: true, InstalledVersion: "1.0.0", AvailableVersion: "1.0.0"},
			{Identifier: "B", AvailableVersion: "2.0.0"},
			{Identifier: "C", Installed: true, InstalledVersion: "3.0.0", AvailableVersion: "3.1.0"},
		},
		OutOfDate: []registry.ExtensionHeader{
			{Identifier: "C", Installed: true, InstalledVersion: "3.0.0", AvailableVersion: "3.1.0"},
		},
	}

	log, hook := test.NewNullLogger()
	result, err := NewInstaller(reg, log).Install(context.Background(), report, false, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, result.Installed)
	assert.Empty(t, result.Updated)
	assert.Equal(t, []string{"B"}, reg.fetched)

	v, ok := p.InstalledExtensionVersion("C")
	assert.True(t, ok)
	assert.Equal(t, "3.0.0", v, "declined update must leave C untouched")
	assert.Equal(t, []string{"B::Thing"}, p.FindExtension("B").ObjectTypes)

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "B", hook.LastEntry().Data["extension"])
}

func TestInstall_WithUpdate(t *testing.T) {
	reg := &fakeRegistry{versions: map[string]string{"B": "2.0.0", "C": "3.1.0"}}
	p := project.New("game")
	require.NoError(t, p.SetExtension(project.Extension{Name: "C", Version: "3.0.0"}))

	c := registry.ExtensionHeader{Identifier: "C", Installed: true, InstalledVersion: "3.0.0", AvailableVersion: "3.1.0"}
	report := &registry.Report{
		Required:  []registry.ExtensionHeader{{Identifier: "B", AvailableVersion: "2.0.0"}, c},
		OutOfDate: []registry.ExtensionHeader{c},
	}

	result, err := NewInstaller(reg, nil).Install(context.Background(), report, true, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, result.Installed)
	assert.Equal(t, []string{"C"}, result.Updated)
	assert.Equal(t, []string{"B", "C"}, reg.fetched, "new installs come before upgrades")

	v, _ := p.InstalledExtensionVersion("C")
	assert.Equal(t, "3.1.0", v)
	assert.Len(t, p.Extensions, 2)
}

func TestInstall_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("registry down")
	reg := &fakeRegistry{
		versions: map[string]string{"A": "1.0.0", "C": "1.0.0"},
		fail:     map[string]error{"B": boom},
	}
	p := project.New("game")
	report := &registry.Report{Required: []registry.ExtensionHeader{
		{Identifier: "A"}, {Identifier: "B"}, {Identifier: "C"},
	}}

	result, err := NewInstaller(reg, nil).Install(context.Background(), report, false, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"A"}, result.Installed)
	assert.True(t, p.HasExtension("A"), "no rollback of earlier installs")
	assert.False(t, p.HasExtension("C"))

	// Re-running after the registry recovers installs the rest.
	reg.fail = nil
	reg.versions["B"] = "1.0.0"
	result, err = NewInstaller(reg, nil).Install(context.Background(), report, false, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, result.Installed)
}

func TestStatuses(t *testing.T) {
	p := project.New("game")
	require.NoError(t, p.SetExtension(project.Extension{Name: "A", Version: "1.0.0"}))
	require.NoError(t, p.SetExtension(project.Extension{Name: "B", Version: "1.0.0"}))
	require.NoError(t, p.SetExtension(project.Extension{Name: "Local", Version: "0.1.0"}))

	statuses := Statuses(p, []registry.Entry{
		{Name: "A", Version: "1.0.0"},
		{Name: "B", Version: "1.5.0"},
	})

	require.Len(t, statuses, 3)
	assert.Equal(t, StatusOK, statuses[0].Status)
	assert.Equal(t, StatusOutdated, statuses[1].Status)
	assert.Equal(t, "1.5.0", statuses[1].Available)
	assert.Equal(t, StatusUnknown, statuses[2].Status)
}
