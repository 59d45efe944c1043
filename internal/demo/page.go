package demo

// payload is the hydration payload of the demo page: the counter at
// slot 0, the task collection at slot 1, and one subscription group
// per component, counter's on top.
const payload = `{` +
	`"ctx":{"11":{"R":"counter"},"12":{"R":"tasks"}},` +
	`"objs":[5,[{"title":"write tests","done":false,"pos":0},{"title":"ship it","done":false,"pos":1}]],` +
	`"subs":[["12 0"],["11 0"]]` +
	`}`

// Page returns the demo page as served: both regions pre-rendered to
// match what the components produce from the payload state, so the
// first reconciliation only touches what a dispatch changed.
func Page() string {
	return `<html><head><title>easel demo</title></head><body>` +
		`<main>` +
		`<section><!--av a:id=counter-->` +
		`<div class="counter"><button>-</button><span>5</span><button>+</button></div>` +
		`<!--/av--></section>` +
		`<section><!--av a:id=tasks-->` +
		`<ul class="tasks">` +
		`<li><button>[ ]</button><span>write tests</span><button>x</button></li>` +
		`<li><button>[ ]</button><span>ship it</span><button>x</button></li>` +
		`</ul>` +
		`<p>2 open</p>` +
		`<button>Clear done</button>` +
		`<!--/av--></section>` +
		`</main>` +
		`<script type="app/json">` + payload + `</script>` +
		`</body></html>`
}
