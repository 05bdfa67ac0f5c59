package catalog

import (
	"net/http"
	"strconv"

	"snatchup/utils"

	"github.com/julienschmidt/httprouter"
)

// GetProducts lists the catalog with optional ?category=, ?q=, ?min=, ?max=
// and ?sort= query filters.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	f := Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		SortBy:   q.Get("sort"),
	}
	var err error
	if min := q.Get("min"); min != "" {
		if f.MinPrice, err = strconv.ParseFloat(min, 64); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid min price")
			return
		}
	}
	if max := q.Get("max"); max != "" {
		if f.MaxPrice, err = strconv.ParseFloat(max, 64); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid max price")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, List(f))
}

// GetProduct returns one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("productid"))
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, ok := ByID(id)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetCategories lists the distinct catalog categories.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, Categories())
}
