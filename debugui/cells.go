package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/yetrix/board"
)

// CellInfo is one row of the cell browser.
type CellInfo struct {
	ID    board.CellID
	X, Y  int
	Piece string
	State string
}

// CellBrowser lists the board cells with a text filter, sorting and paging.
type CellBrowser struct {
	board       *board.Board
	cells       []CellInfo
	selected    board.CellID
	hasSelected bool
	filterText  string
	sortColumn  int
	sortAsc     bool
	perPage     int
	currentPage int
}

func NewCellBrowser(b *board.Board, perPage int) *CellBrowser {
	return &CellBrowser{board: b, sortAsc: true, perPage: max(perPage, 1)}
}

// Collect snapshots the board into browser rows.
func Collect(b *board.Board) []CellInfo {
	cells := b.Cells()
	out := make([]CellInfo, 0, len(cells))
	for _, c := range cells {
		piece := "frozen"
		if !c.Frozen() {
			piece = fmt.Sprintf("%d", c.Piece)
			if p, ok := b.Piece(c.Piece); ok {
				piece += " " + p.Shape.String()
			}
		}
		out = append(out, CellInfo{ID: c.ID, X: c.Pos.X, Y: c.Pos.Y, Piece: piece, State: c.State.String()})
	}
	return out
}

// SortCells orders rows by column: 0 id, 1 x, 2 y, 3 piece, 4 state.
func SortCells(cells []CellInfo, column int, ascending bool) {
	slices.SortStableFunc(cells, func(a, b CellInfo) int {
		var c int
		switch column {
		case 1:
			c = a.X - b.X
		case 2:
			c = a.Y - b.Y
		case 3:
			c = strings.Compare(a.Piece, b.Piece)
		case 4:
			c = strings.Compare(a.State, b.State)
		}
		if c == 0 {
			switch {
			case a.ID < b.ID:
				c = -1
			case a.ID > b.ID:
				c = 1
			}
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// FilterCells keeps rows whose id, position, piece or state contains text.
func FilterCells(cells []CellInfo, text string) []CellInfo {
	if text == "" {
		return cells
	}
	text = strings.ToLower(text)

	out := make([]CellInfo, 0, len(cells))
	for _, c := range cells {
		row := strings.ToLower(fmt.Sprintf("%d (%d,%d) %s %s", c.ID, c.X, c.Y, c.Piece, c.State))
		if strings.Contains(row, text) {
			out = append(out, c)
		}
	}
	return out
}

func (cb *CellBrowser) Render(float32) {
	if !imgui.BeginV("Cell Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	cb.cells = Collect(cb.board)

	imgui.InputTextWithHint("##search", "Search...", &cb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		cb.filterText = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	filtered := FilterCells(cb.cells, cb.filterText)

	if imgui.BeginTableV("CellTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Cell")
		imgui.TableSetupColumn("X")
		imgui.TableSetupColumn("Y")
		imgui.TableSetupColumn("Piece")
		imgui.TableSetupColumn("State")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cb.sortColumn = int(spec.ColumnIndex())
			cb.sortAsc = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortCells(filtered, cb.sortColumn, cb.sortAsc)

		start := min(cb.currentPage*cb.perPage, len(filtered))
		end := min(start+cb.perPage, len(filtered))
		for _, c := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", c.ID), cb.selected == c.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				cb.selected, cb.hasSelected = c.ID, true
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", c.X))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", c.Y))
			imgui.TableNextColumn()
			imgui.Text(c.Piece)
			imgui.TableNextColumn()
			imgui.Text(c.State)
		}

		imgui.EndTable()
	}

	if len(filtered) > cb.perPage {
		totalPages := (len(filtered) + cb.perPage - 1) / cb.perPage
		cb.currentPage = min(cb.currentPage, totalPages-1)
		imgui.Text(fmt.Sprintf("Page %d / %d (%d cells)", cb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && cb.currentPage > 0 {
			cb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && cb.currentPage < totalPages-1 {
			cb.currentPage++
		}
	} else {
		cb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d cells", len(filtered)))
	}

	imgui.End()
}

// Selected returns the last clicked cell while it is still on the board.
func (cb *CellBrowser) Selected() (board.CellID, bool) {
	if !cb.hasSelected {
		return 0, false
	}
	if _, ok := cb.board.Cell(cb.selected); !ok {
		return 0, false
	}
	return cb.selected, true
}
