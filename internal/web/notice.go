package web

type Notice struct {
	Kind string
	Text string
	// DismissURL reloads the page without the notice.
	DismissURL string
}

var notices = map[string]Notice{
	"load_failed":     {Kind: "error", Text: "Could not load anime"},
	"access_denied":   {Kind: "error", Text: "Access denied: you do not have administrator rights"},
	"check_failed":    {Kind: "error", Text: "Could not verify your session"},
	"logged_out":      {Kind: "success", Text: "You have been signed out"},
	"anime_created":   {Kind: "success", Text: "Anime added"},
	"anime_updated":   {Kind: "success", Text: "Anime updated"},
	"anime_deleted":   {Kind: "success", Text: "Anime deleted"},
	"anime_failed":    {Kind: "error", Text: "Could not save anime"},
	"anime_del_fail":  {Kind: "error", Text: "Could not delete anime"},
	"ad_created":      {Kind: "success", Text: "Advertisement added"},
	"ad_updated":      {Kind: "success", Text: "Advertisement updated"},
	"ad_deleted":      {Kind: "success", Text: "Advertisement deleted"},
	"ad_failed":       {Kind: "error", Text: "Could not save advertisement"},
	"ad_del_fail":     {Kind: "error", Text: "Could not delete advertisement"},
	"ad_toggle_fail":  {Kind: "error", Text: "Could not change advertisement status"},
	"list_failed":     {Kind: "error", Text: "Could not load the list"},
	"invalid_form":    {Kind: "error", Text: "Please fix the highlighted fields"},
	"confirm_missing": {Kind: "error", Text: "Deletion was not confirmed"},
}

// LookupNotice resolves a notice code; unknown codes yield nil so arbitrary
// query text is never echoed back.
func LookupNotice(code, dismissURL string) *Notice {
	n, ok := notices[code]
	if !ok {
		return nil
	}
	n.DismissURL = dismissURL
	return &n
}
