package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyResolve(t *testing.T) {
	family := Exhibition()

	tests := []struct {
		name    string
		wantPK  string
		wantErr bool
	}{
		{name: "salas", wantPK: "registro_sala"},
		{name: "complexos", wantPK: "registro_complexo"},
		{name: "exibidores", wantPK: "registro_exibidor"},
		{name: "users", wantErr: true},
		{name: "obras", wantErr: true}, // valid elsewhere, not in this family
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := family.Resolve(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownResource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPK, res.PrimaryKey().Name)
		})
	}
}

func TestEveryResourceHasSinglePrimaryKey(t *testing.T) {
	resources := []*Resource{
		SalaSearch(), ObraSearch(), LancamentoSearch(), FilmagemEstrangeira(),
	}
	family := Exhibition()
	for _, name := range family.Resources() {
		res, err := family.Resolve(name)
		require.NoError(t, err)
		resources = append(resources, res)
	}

	for _, res := range resources {
		count := 0
		for _, c := range res.Columns {
			if c.PrimaryKey {
				count++
			}
		}
		assert.Equalf(t, 1, count, "resource %s must declare exactly one primary key", res.Name)
	}
}

func TestRelationPath(t *testing.T) {
	salas := SalaSearch()

	chain, ok := salas.RelationPath("complexos")
	require.True(t, ok)
	require.Len(t, chain, 1)
	assert.Equal(t, "complexos", chain[0].Table)
	assert.True(t, chain[0].Required)

	chain, ok = salas.RelationPath("complexos.exibidores")
	require.True(t, ok)
	require.Len(t, chain, 2)
	assert.Equal(t, "exibidores", chain[1].Table)
	assert.False(t, chain[1].Required)

	_, ok = salas.RelationPath("exibidores")
	assert.False(t, ok, "exibidores is only reachable through complexos")

	_, ok = salas.RelationPath("complexos.nonexistent")
	assert.False(t, ok)
}

func TestLancamentoRelationRequirements(t *testing.T) {
	lanc := LancamentoSearch()

	dist, ok := lanc.RelationPath("distribuidoras")
	require.True(t, ok)
	assert.True(t, dist[0].Required, "every release has a distributor")

	obras, ok := lanc.RelationPath("obras")
	require.True(t, ok)
	assert.False(t, obras[0].Required, "foreign releases have no obra record")
}

func TestColumnParseValue(t *testing.T) {
	tests := []struct {
		name    string
		col     Column
		raw     string
		want    any
		wantErr bool
	}{
		{name: "string passthrough", col: Column{Name: "uf_complexo", Type: TypeString}, raw: "SP", want: "SP"},
		{name: "int", col: Column{Name: "assentos_total", Type: TypeInt}, raw: "140", want: int64(140)},
		{name: "int invalid", col: Column{Name: "assentos_total", Type: TypeInt}, raw: "muitos", wantErr: true},
		{name: "float", col: Column{Name: "renda_total", Type: TypeFloat}, raw: "1234.56", want: 1234.56},
		{name: "bool", col: Column{Name: "complexo_itinerante", Type: TypeBool}, raw: "true", want: true},
		{name: "bool invalid", col: Column{Name: "complexo_itinerante", Type: TypeBool}, raw: "talvez", wantErr: true},
		{name: "date", col: Column{Name: "data_lancamento", Type: TypeDate}, raw: "2023-07-20",
			want: time.Date(2023, 7, 20, 0, 0, 0, 0, time.UTC)},
		{name: "date invalid", col: Column{Name: "data_lancamento", Type: TypeDate}, raw: "20/07/2023", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.col.ParseValue(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
