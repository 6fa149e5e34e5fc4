package api

import (
	"net/http"

	"iph/core"
)

func (a *API) addDrugSeizure(w http.ResponseWriter, r *http.Request) {
	linkID, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid detention id", http.StatusBadRequest)
		return
	}

	var req drugSeizureRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	seizure := core.DrugSeizure{
		DrugID:          req.DrugID,
		EventDetaineeID: linkID,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
	}
	if err := a.seizures.AddDrugSeizure(r.Context(), &seizure); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, seizure, http.StatusCreated)
}

func (a *API) listDrugSeizures(w http.ResponseWriter, r *http.Request) {
	linkID, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid detention id", http.StatusBadRequest)
		return
	}

	seizures, err := a.seizures.ListDrugSeizures(r.Context(), linkID)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if seizures == nil {
		seizures = []core.DrugSeizure{}
	}
	a.respondJSON(w, seizures, http.StatusOK)
}

func (a *API) addWeaponSeizure(w http.ResponseWriter, r *http.Request) {
	linkID, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid detention id", http.StatusBadRequest)
		return
	}

	var req weaponSeizureRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	seizure := core.WeaponSeizure{
		WeaponID:        req.WeaponID,
		EventDetaineeID: linkID,
		Quantity:        req.Quantity,
	}
	if err := a.seizures.AddWeaponSeizure(r.Context(), &seizure); err != nil {
		a.handleEventError(w, err)
		return
	}
	a.respondJSON(w, seizure, http.StatusCreated)
}

func (a *API) listWeaponSeizures(w http.ResponseWriter, r *http.Request) {
	linkID, err := pathID(r)
	if err != nil {
		a.respondError(w, "invalid detention id", http.StatusBadRequest)
		return
	}

	seizures, err := a.seizures.ListWeaponSeizures(r.Context(), linkID)
	if err != nil {
		a.handleEventError(w, err)
		return
	}
	if seizures == nil {
		seizures = []core.WeaponSeizure{}
	}
	a.respondJSON(w, seizures, http.StatusOK)
}
