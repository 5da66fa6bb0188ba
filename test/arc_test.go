package architecture_test

import (
	"testing"

	"github.com/mstrYoda/go-arctest/pkg/arctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mod = `github\.com/okutsenko-ucu/cloud-portfolio`

func TestLayeredArchitecture(t *testing.T) {
	arch, err := arctest.New("../")
	require.NoError(t, err)

	err = arch.ParsePackages()
	require.NoError(t, err, "failed to parse packages")

	domainLayer, err := arctest.NewLayer("domain", `^`+mod+`/internal/models`)
	require.NoError(t, err)

	appLayer, err := arctest.NewLayer("application",
		`^`+mod+`/internal/(app|config|services/movies|services/logger)`)
	require.NoError(t, err)

	userLayer, err := arctest.NewLayer("presentation",
		`^`+mod+`/internal/(handlers|cli)`)
	require.NoError(t, err)

	infraLayer, err := arctest.NewLayer("infrastructure",
		`^`+mod+`/internal/(repository|services/cache|services/metrics|services/weather|services/summary)`)
	require.NoError(t, err)

	layered := arch.NewLayeredArchitecture(domainLayer, appLayer, infraLayer, userLayer)

	err = appLayer.DependsOnLayer(domainLayer)
	assert.NoError(t, err)

	err = appLayer.DependsOnLayer(infraLayer)
	assert.NoError(t, err)

	err = appLayer.DependsOnLayer(userLayer)
	assert.NoError(t, err)

	err = infraLayer.DependsOnLayer(domainLayer)
	assert.NoError(t, err)

	err = userLayer.DependsOnLayer(domainLayer)
	assert.NoError(t, err)

	err = userLayer.DependsOnLayer(appLayer)
	assert.NoError(t, err)

	violations, err := layered.Check()
	require.NoError(t, err)

	assert.Len(t, violations, 0)

	for _, v := range violations {
		assert.Failf(t, "", "violation: %s", v)
	}
}
