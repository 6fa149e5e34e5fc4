package api

import (
	"net/http"
	"strconv"

	"iph/core"
)

func (a *API) listEventTypes(w http.ResponseWriter, r *http.Request) {
	types, err := a.catalogs.ListEventTypes(r.Context())
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if types == nil {
		types = []core.EventType{}
	}
	a.respondJSON(w, types, http.StatusOK)
}

func (a *API) createEventType(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	et := core.EventType{Description: req.Description}
	if err := a.catalogs.CreateEventType(r.Context(), &et); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, et, http.StatusCreated)
}

func (a *API) listRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := a.catalogs.ListRegions(r.Context())
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if regions == nil {
		regions = []core.Region{}
	}
	a.respondJSON(w, regions, http.StatusOK)
}

func (a *API) createRegion(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	region := core.Region{Description: req.Description}
	if err := a.catalogs.CreateRegion(r.Context(), &region); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, region, http.StatusCreated)
}

func (a *API) listVehicleUnits(w http.ResponseWriter, r *http.Request) {
	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			a.respondError(w, "invalid active filter", http.StatusBadRequest)
			return
		}
		active = &parsed
	}

	units, err := a.catalogs.ListVehicleUnits(r.Context(), active)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if units == nil {
		units = []core.VehicleUnit{}
	}
	a.respondJSON(w, units, http.StatusOK)
}

func (a *API) createVehicleUnit(w http.ResponseWriter, r *http.Request) {
	var req createVehicleUnitRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	unit := core.VehicleUnit{
		Callsign:     req.Callsign,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		RegisteredAt: req.RegisteredAt,
		Active:       true,
	}
	if req.Active != nil {
		unit.Active = *req.Active
	}
	if err := a.catalogs.CreateVehicleUnit(r.Context(), &unit); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, unit, http.StatusCreated)
}

func (a *API) listOfficers(w http.ResponseWriter, r *http.Request) {
	officers, err := a.catalogs.ListOfficers(r.Context())
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if officers == nil {
		officers = []core.Officer{}
	}
	a.respondJSON(w, officers, http.StatusOK)
}

func (a *API) createOfficer(w http.ResponseWriter, r *http.Request) {
	var req createOfficerRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	officer := core.Officer{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     core.OfficerRole(req.Role),
		ChatID:   req.ChatID,
	}
	if err := a.catalogs.CreateOfficer(r.Context(), &officer); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, officer, http.StatusCreated)
}

func (a *API) listDetainees(w http.ResponseWriter, r *http.Request) {
	detainees, err := a.catalogs.ListDetainees(r.Context())
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if detainees == nil {
		detainees = []core.Detainee{}
	}
	a.respondJSON(w, detainees, http.StatusOK)
}

func (a *API) createDetainee(w http.ResponseWriter, r *http.Request) {
	var req createDetaineeRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	detainee := core.Detainee{
		FullName: req.FullName,
		Age:      req.Age,
		TaxID:    req.TaxID,
	}
	if err := a.catalogs.CreateDetainee(r.Context(), &detainee); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, detainee, http.StatusCreated)
}

func (a *API) listMotiveCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.catalogs.ListMotiveCategories(r.Context())
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if categories == nil {
		categories = []core.MotiveCategory{}
	}
	a.respondJSON(w, categories, http.StatusOK)
}

func (a *API) createMotiveCategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	category := core.MotiveCategory{Name: req.Name}
	if err := a.catalogs.CreateMotiveCategory(r.Context(), &category); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, category, http.StatusCreated)
}

func (a *API) listMotives(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.respondError(w, "invalid category_id filter", http.StatusBadRequest)
			return
		}
		categoryID = &parsed
	}

	motives, err := a.catalogs.ListMotives(r.Context(), categoryID)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if motives == nil {
		motives = []core.Motive{}
	}
	a.respondJSON(w, motives, http.StatusOK)
}

func (a *API) createMotive(w http.ResponseWriter, r *http.Request) {
	var req createMotiveRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	motive := core.Motive{Text: req.Text, CategoryID: req.CategoryID}
	if err := a.catalogs.CreateMotive(r.Context(), &motive); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, motive, http.StatusCreated)
}

func (a *API) listDrugs(w http.ResponseWriter, r *http.Request) {
	drugs, err := a.catalogs.ListDrugs(r.Context())
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if drugs == nil {
		drugs = []core.Drug{}
	}
	a.respondJSON(w, drugs, http.StatusOK)
}

func (a *API) createDrug(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	drug := core.Drug{Description: req.Description}
	if err := a.catalogs.CreateDrug(r.Context(), &drug); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, drug, http.StatusCreated)
}

func (a *API) listWeapons(w http.ResponseWriter, r *http.Request) {
	weapons, err := a.catalogs.ListWeapons(r.Context())
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if weapons == nil {
		weapons = []core.Weapon{}
	}
	a.respondJSON(w, weapons, http.StatusOK)
}

func (a *API) createWeapon(w http.ResponseWriter, r *http.Request) {
	var req createWeaponRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	weapon := core.Weapon{Kind: req.Kind, Name: req.Name}
	if err := a.catalogs.CreateWeapon(r.Context(), &weapon); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, weapon, http.StatusCreated)
}
