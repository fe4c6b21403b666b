// Package http provides request and response helpers for handlers mounted on
// the framework router.
//
//	req := gohttp.NewRequest(r)
//	res := gohttp.NewResponse(w)
//
//	var body struct {
//	    Title string `json:"title"`
//	}
//	if err := req.Bind(&body); err != nil {
//	    res.Error(http.StatusBadRequest, err.Error())
//	    return
//	}
//
//	id := req.RouteParam("id")
//	res.Success(map[string]any{"id": id, "title": body.Title})
//
// Every JSON response is wrapped: {"data": ...} on success,
// {"message": ...} on error, and {"message": ..., "errors": {...}} for
// validation failures.
package http
