// Package store persists the portfolio between runs.
//
// The dataset is a JSON array of entries written wholesale after every newly
// resolved card, so an interrupted run loses at most the card in flight. The
// field names match datasets written by earlier versions of the tracker:
//
//	[
//	  {
//	    "original_query": "Keldeo GG07/GG70",
//	    "name": "Keldeo",
//	    "set": "Crown Zenith Galarian Gallery",
//	    "number": "GG07",
//	    "total_printed": 70,
//	    "image": "https://images.pokemontcg.io/swsh12pt5gg/GG07.png",
//	    "market_price": 2.5
//	  }
//	]
//
// Every save also regenerates the HTML report through the configured
// Renderer. Paths are fixed when the store is constructed:
//
//	s := store.NewJSONStore(store.Options{
//	    DataFile:   "portfolio_data.json",
//	    ReportFile: "generated_cards.html",
//	    Renderer:   &report.Gallery{ReportFile: "generated_cards.html"},
//	}, log)
package store
