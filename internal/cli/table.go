/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"dirpx.dev/errboundary/internal/calendar"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 2, 0, 0)
	cellStyle   = lipgloss.NewStyle().Padding(0, 2, 0, 0)
)

// renderTable lays schedules out in ID, START, END, SUBJECT columns.
func renderTable(schedules []calendar.Schedule) string {
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, []string{
			strconv.FormatUint(s.ID, 10),
			s.Start.Format(calendar.Layout),
			s.End.Format(calendar.Layout),
			s.Subject,
		})
	}

	return table.New().
		Headers("ID", "START", "END", "SUBJECT").
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
