package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ReeCocho/Snek/ecs"
)

// EntityInfo is one row of the entity browser. Parent is -1 for roots.
type EntityInfo struct {
	Entity         ecs.Entity
	Parent         int64
	Types          []ecs.TypeID
	ComponentTypes []string
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastTick      uint64
	lastCount     int
	valid         bool
	sortColumn    int
	sortAscending bool
}

// EntityBrowser lists live entities and keeps track of the selected one.
type EntityBrowser struct {
	cache              *EntityBrowserCache
	selected           ecs.Entity
	hasSelection       bool
	filterText         string
	filterType         *ecs.TypeID
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(scene)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterType = nil
	}
	if eb.filterType != nil {
		imgui.Text("Type: " + scene.Registry().Info(*eb.filterType).Name)
	}

	filteredEntities := eb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Parent")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			filteredEntities = eb.filtered()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := min(eb.currentPage*eb.maxEntitiesPerPage, len(filteredEntities))
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selected == entity.Entity
			if imgui.SelectableBoolV(strconv.FormatUint(uint64(entity.Entity.Index()), 10), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.Entity)
			}

			imgui.TableNextColumn()
			if entity.Parent < 0 {
				imgui.Text("-")
			} else {
				imgui.Text(strconv.FormatInt(entity.Parent, 10))
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(strconv.Itoa(len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	if eb.hasSelection {
		imgui.Separator()
		if imgui.Button("Create Child") {
			child := scene.Create()
			child.Transform().SetParent(eb.selected.Transform())
			eb.Select(child)
		}
		imgui.SameLine()
		if imgui.Button("Destroy") {
			eb.selected.Destroy()
			eb.hasSelection = false
		}
	} else if imgui.Button("Create Entity") {
		eb.Select(scene.Create())
	}

	imgui.End()
}

// Select makes e the entity shown by the component inspector.
func (eb *EntityBrowser) Select(e ecs.Entity) {
	eb.selected = e
	eb.hasSelection = true
	eb.cache.valid = false
}

// Selected returns the selected entity, if it is still alive.
func (eb *EntityBrowser) Selected() (ecs.Entity, bool) {
	if eb.hasSelection && !eb.selected.IsAlive() {
		eb.hasSelection = false
	}
	return eb.selected, eb.hasSelection
}

// FilterType limits the list to entities holding a component of exactly id.
func (eb *EntityBrowser) FilterType(id ecs.TypeID) {
	eb.filterType = &id
	eb.currentPage = 0
}

func (eb *EntityBrowser) rebuildCacheIfNeeded(scene *ecs.Scene) {
	if eb.cache.valid && eb.cache.lastTick == scene.Ticks() && eb.cache.lastCount == scene.EntityCount() {
		return
	}
	eb.cache.entities = collectEntities(scene)
	eb.cache.lastTick = scene.Ticks()
	eb.cache.lastCount = scene.EntityCount()
	eb.cache.valid = true
	sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
}

func (eb *EntityBrowser) filtered() []EntityInfo {
	return filterEntities(eb.cache.entities, eb.filterText, eb.filterType)
}

func collectEntities(scene *ecs.Scene) []EntityInfo {
	registry := scene.Registry()
	entities := make([]EntityInfo, 0, scene.EntityCount())

	for e := range scene.Entities() {
		info := EntityInfo{Entity: e, Parent: -1}
		if p, ok := e.Transform().Parent(); ok {
			info.Parent = int64(p.Entity().Index())
		}
		for c := range scene.Components(e) {
			info.Types = append(info.Types, c.TypeID())
			info.ComponentTypes = append(info.ComponentTypes, registry.Info(c.TypeID()).Name)
		}
		entities = append(entities, info)
	}
	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	less := func(a, b EntityInfo) bool {
		switch column {
		case 1:
			return a.Parent < b.Parent
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			return len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			return a.Entity.Index() < b.Entity.Index()
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		if !ascending {
			return less(entities[j], entities[i])
		}
		return less(entities[i], entities[j])
	})
}

func filterEntities(entities []EntityInfo, text string, typ *ecs.TypeID) []EntityInfo {
	if text == "" && typ == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if typ != nil && !slices.Contains(entity.Types, *typ) {
			continue
		}

		if text != "" {
			idStr := strconv.FormatUint(uint64(entity.Entity.Index()), 10)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}
