package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/warpcore/engine"
)

type EntityInfo struct {
	ID        engine.EntityID
	X, Y      float32
	Body      string
	Collider  string
	Behaviors []string
}

// SceneInspector lists the active scene's entities and data map.
type SceneInspector struct {
	filterText         string
	selectedEntityId   engine.EntityID
	maxEntitiesPerPage int
	currentPage        int
}

func NewSceneInspector(maxEntitiesPerPage int) *SceneInspector {
	return &SceneInspector{maxEntitiesPerPage: maxEntitiesPerPage}
}

func (si *SceneInspector) Render(e *engine.Engine, stats *engine.Stats) {
	if !imgui.BeginV("Scene Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	scene := e.ActiveScene()
	if scene == nil {
		imgui.Text("No active scene")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Scene: %s", scene.Name()))
	imgui.InputTextWithHint("##search", "Search...", &si.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		si.filterText = ""
	}

	entities := filterEntities(collectEntities(scene), si.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 240), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Body")
		imgui.TableSetupColumn("Collider")
		imgui.TableSetupColumn("Behaviors")
		imgui.TableHeadersRow()

		startIdx := min(si.currentPage*si.maxEntitiesPerPage, len(entities))
		endIdx := min(startIdx+si.maxEntitiesPerPage, len(entities))

		for _, entity := range entities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := si.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				si.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f", entity.X, entity.Y))

			imgui.TableNextColumn()
			imgui.Text(entity.Body)

			imgui.TableNextColumn()
			imgui.Text(entity.Collider)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Behaviors, ", "))
		}

		imgui.EndTable()
	}

	if len(entities) > si.maxEntitiesPerPage {
		totalPages := (len(entities) + si.maxEntitiesPerPage - 1) / si.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", si.currentPage+1, totalPages, len(entities)))
		imgui.SameLine()
		if imgui.Button("Prev") && si.currentPage > 0 {
			si.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && si.currentPage < totalPages-1 {
			si.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(entities)))
	}

	if imgui.TreeNodeStr("Data") {
		data := scene.DataSnapshot()
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			imgui.BulletText(fmt.Sprintf("%s = %s", k, data[k]))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func collectEntities(scene *engine.Scene) []EntityInfo {
	infos := make([]EntityInfo, 0, scene.Len())
	for entity := range scene.Entities() {
		info := EntityInfo{
			ID:        entity.ID(),
			X:         entity.Position().X(),
			Y:         entity.Position().Y(),
			Body:      "-",
			Collider:  "-",
			Behaviors: entity.BehaviorNames(),
		}
		if entity.Body().IsValid() {
			info.Body = entity.Body().String()
		}
		if entity.Collider().IsValid() {
			info.Collider = entity.Collider().String()
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

func filterEntities(entities []EntityInfo, filter string) []EntityInfo {
	if filter == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(filter)

	for _, entity := range entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		behaviorsStr := strings.ToLower(strings.Join(entity.Behaviors, " "))

		if !strings.Contains(idStr, filterLower) && !strings.Contains(behaviorsStr, filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}

	return filtered
}
