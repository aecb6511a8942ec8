package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ReeCocho/Snek/ecs"
)

// TypeRow describes one registered identity and how many instances the scene stores.
type TypeRow struct {
	ID       ecs.TypeID
	Name     string
	Abstract bool
	Children []string
	Count    int
}

// TypeViewer lists the component registry. Clicking a row returns its identity so the
// entity browser can filter by it.
type TypeViewer struct {
	rows          []TypeRow
	selected      *ecs.TypeID
	sortColumn    int
	sortAscending bool
}

func NewTypeViewer() *TypeViewer {
	return &TypeViewer{
		sortColumn:    3,
		sortAscending: false,
	}
}

func (tv *TypeViewer) Render(scene *ecs.Scene) *ecs.TypeID {
	if !imgui.BeginV("Type Registry", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	tv.rows = collectTypes(scene)
	sortTypes(tv.rows, tv.sortColumn, tv.sortAscending)

	maxCount := 0
	for _, row := range tv.rows {
		maxCount = max(maxCount, row.Count)
	}

	var clicked *ecs.TypeID

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("TypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Children")
		imgui.TableSetupColumn("Instances")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.sortColumn = int(spec.ColumnIndex())
			tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortTypes(tv.rows, tv.sortColumn, tv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range tv.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tv.selected != nil && *tv.selected == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := row.ID
				clicked = &id
				tv.selected = &id
			}

			imgui.TableNextColumn()
			if row.Abstract {
				imgui.Text(row.Name + " (abstract)")
			} else {
				imgui.Text(row.Name)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Children, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Count))

			if maxCount > 0 {
				barWidth := float32(row.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func collectTypes(scene *ecs.Scene) []TypeRow {
	registry := scene.Registry()
	counts := make(map[ecs.TypeID]int)
	for _, ts := range scene.CollectStats().Types {
		counts[ts.ID] = ts.Count
	}

	var rows []TypeRow
	for info := range registry.Types() {
		children := make([]string, len(info.Children))
		for i, child := range info.Children {
			children[i] = registry.Info(child).Name
		}
		rows = append(rows, TypeRow{
			ID:       info.ID,
			Name:     info.Name,
			Abstract: info.Abstract,
			Children: children,
			Count:    counts[info.ID],
		})
	}
	return rows
}

func sortTypes(rows []TypeRow, column int, ascending bool) {
	less := func(a, b TypeRow) bool {
		switch column {
		case 0:
			return a.ID < b.ID
		case 1:
			return a.Name < b.Name
		case 2:
			return len(a.Children) < len(b.Children)
		default:
			return a.Count < b.Count
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !ascending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
