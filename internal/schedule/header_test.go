package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Activity_ID", "Activity_Id"},
		{"Update_ID", "Update_Id"},
		{"  update id  ", "Update_Id"},
		{"PLANNED   FINISH", "Planned_Finish"},
		{"longest_path", "Longest_Path"},
		{"Total Float", "Total_Float"},
		{"Delay_Cause", "Delay_Cause"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.in))
		})
	}
}

func TestIndexHeader_FirstDuplicateWins(t *testing.T) {
	idx := indexHeader([]string{"Activity ID", "activity_id", ""})
	assert.Equal(t, 0, idx[ColActivityID])
	assert.Len(t, idx, 1)
}

func TestValidate_ListsMissingInCanonicalOrder(t *testing.T) {
	idx := indexHeader([]string{"Activity_ID", "Activity_Name", "Update_ID", "Planned_Start"})
	err := idx.validate()
	require.Error(t, err)

	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{
		ColPlannedFinish, ColActualStart, ColActualFinish, ColLongestPath, ColTotalFloat,
	}, se.Missing)
	assert.Contains(t, se.Error(), "Planned_Finish, Actual_Start")
}

func TestCell_ShortRow(t *testing.T) {
	idx := indexHeader([]string{"A", "B", "C"})
	assert.Nil(t, idx.cell([]any{"x"}, "C"))
	assert.Nil(t, idx.cell([]any{"x"}, "Missing"))
	assert.Equal(t, "x", idx.cell([]any{"x"}, "A"))
}
