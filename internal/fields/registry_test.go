package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

func testRegistry() *Registry {
	return NewRegistry([]models.Field{
		{ID: "summary", Name: "Summary", Custom: false, Type: "string"},
		{ID: "customfield_10016", Name: "Story Points", Custom: true, Type: "number"},
		{ID: "customfield_20000", Name: "ざっくりポイント", Custom: true, Type: "number"},
		{ID: "status", Name: "Status", Custom: false, Type: "status"},
	})
}

func TestRegistryLookups(t *testing.T) {
	r := testRegistry()

	f, ok := r.ByID("customfield_10016")
	require.True(t, ok)
	assert.Equal(t, "Story Points", f.Name)

	_, ok = r.ByID("customfield_99999")
	assert.False(t, ok)

	f, ok = r.ByName("Story Points")
	require.True(t, ok)
	assert.Equal(t, "customfield_10016", f.ID)

	f, ok = r.ByName("story points")
	require.True(t, ok)
	assert.Equal(t, "customfield_10016", f.ID)

	_, ok = r.ByName("Story Pointz")
	assert.False(t, ok)
}

func TestRegistryPartitions(t *testing.T) {
	r := testRegistry()

	custom := r.Custom()
	require.Len(t, custom, 2)
	assert.Equal(t, "customfield_10016", custom[0].ID)
	assert.Equal(t, "customfield_20000", custom[1].ID)

	standard := r.Standard()
	require.Len(t, standard, 2)
	assert.Equal(t, "status", standard[0].ID)
	assert.Equal(t, "summary", standard[1].ID)

	assert.Len(t, r.All(), 4)
}

func TestRegistryResolve(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{
			name:  "Known field ID",
			value: "customfield_10016",
			want:  "customfield_10016",
		},
		{
			name:  "Unknown field ID passes through",
			value: "customfield_99999",
			want:  "customfield_99999",
		},
		{
			name:  "Display name",
			value: "Story Points",
			want:  "customfield_10016",
		},
		{
			name:  "Display name ignoring case",
			value: "STORY POINTS",
			want:  "customfield_10016",
		},
		{
			name:  "Standard field ID",
			value: "summary",
			want:  "summary",
		},
		{
			name:    "Unknown name",
			value:   "Effort",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsFieldID(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"customfield_10016", true},
		{"customfield_1", true},
		{"customfield_", false},
		{"customfield_10a16", false},
		{"Story Points", false},
		{"summary", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFieldID(tt.value))
		})
	}
}
