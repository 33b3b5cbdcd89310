package site

// pageTemplate is the html/template shell around every rendered page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.Assets}}style.css">
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
</head>
<body data-search-index="{{.SearchIndex}}"{{if .Live}} data-live="true"{{end}}>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title"><a href="{{.HomeLink}}">{{.SiteTitle}}</a></h2>
      <input type="text" id="search-input" placeholder="Search pages..." autocomplete="off">
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.Nav}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
        <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/>
        </svg>
        <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
        </svg>
      </button>
    </div>
    <article class="page-content" id="page-{{.PageID}}">
      <h1>{{if .Icon}}<span class="icon">{{.Icon}}</span> {{end}}{{.Title}}</h1>
      {{.Content}}
    </article>
  </main>
  <script src="{{.Assets}}script.js"></script>
</body>
</html>`

// notFoundTemplate is shown for unknown page ids.
const notFoundTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <title>Page not found · {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.Assets}}style.css">
</head>
<body>
  <main class="content">
    <article class="page-content">
      <h1>Page not found</h1>
      <p>There is no page with id <code>{{.PageID}}</code>.</p>
      <p><a href="{{.HomeLink}}">Back to {{.SiteTitle}}</a></p>
    </article>
  </main>
</body>
</html>`

// cssContent is the stylesheet shared by live and exported pages.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --link: #228be6;
  --info: #228be6;
  --tip: #2f9e44;
  --warning: #e67700;
  --sidebar-width: 280px;
  --content-max-width: 900px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-secondary: #1f2030;
  --bg-sidebar: #16171f;
  --text: #c0caf5;
  --text-secondary: #a9b1d6;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --accent-light: #1a1b2e;
  --code-bg: #1f2030;
  --link: #7aa2f7;
  --info: #7aa2f7;
  --tip: #9ece6a;
  --warning: #e0af68;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: var(--bg);
  color: var(--text);
  line-height: 1.6;
}

a { color: var(--link); text-decoration: none; }
a:hover { text-decoration: underline; }

/* ============ Sidebar ============ */
.sidebar {
  position: fixed;
  top: 0; left: 0; bottom: 0;
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  overflow-y: auto;
  z-index: 20;
}
.sidebar-header { padding: 1rem; border-bottom: 1px solid var(--border); }
.project-title { margin: 0 0 .75rem; font-size: 1.1rem; }
.project-title a { color: var(--text); }
#search-input {
  width: 100%;
  padding: .4rem .6rem;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  color: var(--text);
}
.sidebar-tree ul { list-style: none; margin: 0; padding: .5rem 0; }
.sidebar-tree li a {
  display: block;
  padding: .3rem 1rem;
  color: var(--text-secondary);
}
.sidebar-tree li a.active { color: var(--accent); background: var(--accent-light); font-weight: 600; }
.sidebar-tree li.hidden { display: none; }
.sidebar-overlay { display: none; }

/* ============ Content ============ */
.content { margin-left: var(--sidebar-width); padding: 1rem 2rem 4rem; }
.page-content { max-width: var(--content-max-width); }
.top-bar { display: flex; justify-content: space-between; margin-bottom: 1rem; }
.menu-toggle, .theme-toggle {
  background: none; border: none; color: var(--text-secondary); cursor: pointer;
}
.menu-toggle { visibility: hidden; }
[data-theme="light"] .moon-icon, [data-theme="dark"] .sun-icon { display: inline; }
[data-theme="light"] .sun-icon, [data-theme="dark"] .moon-icon { display: none; }

pre { background: var(--code-bg); padding: .75rem 1rem; border-radius: 6px; overflow-x: auto; position: relative; }
code { font-family: "SFMono-Regular", Consolas, monospace; font-size: .9em; }
.copy-btn {
  position: absolute; top: .4rem; right: .4rem;
  font-size: .75rem; padding: .1rem .4rem;
  border: 1px solid var(--border); border-radius: 4px;
  background: var(--bg); color: var(--text-muted); cursor: pointer;
}
figure { margin: 1rem 0; }
figcaption { font-size: .85rem; color: var(--text-muted); margin-bottom: .25rem; }

/* ============ Sections ============ */
.disclosure { border: 1px solid var(--border); border-radius: 8px; margin: .75rem 0; background: var(--bg); }
.disclosure form { margin: 0; }
.disclosure-header {
  display: flex; align-items: center; gap: .5rem;
  width: 100%; padding: .6rem .9rem;
  background: var(--bg-secondary); color: var(--text);
  border: none; border-radius: 8px; font: inherit; font-weight: 600;
  text-align: left; cursor: pointer; list-style: none;
}
summary.disclosure-header::-webkit-details-marker { display: none; }
.chevron::before { content: "\25B8"; display: inline-block; transition: transform .15s; }
.disclosure.open > form .chevron::before,
details[open] > summary .chevron::before { transform: rotate(90deg); }
.disclosure-body { padding: .25rem 1rem .75rem; }
.depth-1 .disclosure-header { font-weight: 500; }
.depth-2 .disclosure-header, .depth-3 .disclosure-header { font-weight: 400; font-size: .95rem; }

/* ============ Tabs ============ */
.tabs { margin: 1rem 0; }
.tab-list { display: flex; gap: .25rem; border-bottom: 1px solid var(--border); }
.tab-list form { margin: 0; }
.tab {
  padding: .4rem .9rem; border: none; background: none;
  color: var(--text-secondary); font: inherit; cursor: pointer;
  border-bottom: 2px solid transparent;
}
.tab.active { color: var(--accent); border-bottom-color: var(--accent); font-weight: 600; }
.tab-panel { padding: .75rem 0; }

/* ============ Primitives ============ */
.table-wrap { overflow-x: auto; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
caption { text-align: left; font-weight: 600; padding-bottom: .25rem; }
th, td { border: 1px solid var(--border); padding: .4rem .6rem; text-align: left; }
th { background: var(--bg-secondary); }
.card { border: 1px solid var(--border); border-radius: 8px; padding: .75rem 1rem; margin: .75rem 0; box-shadow: var(--shadow); }
.card-title { font-weight: 600; }
.highlight { border-left: 4px solid var(--info); background: var(--bg-secondary); padding: .5rem 1rem; margin: 1rem 0; border-radius: 4px; }
.highlight-tip { border-left-color: var(--tip); }
.highlight-warning { border-left-color: var(--warning); }
.highlight-title { font-weight: 600; }
.diagram .mermaid { background: var(--bg-secondary); border-radius: 6px; padding: 1rem; text-align: center; }

/* ============ Related ============ */
.related { margin-top: 2.5rem; border-top: 1px solid var(--border); padding-top: 1rem; }
.related h2 { font-size: 1rem; color: var(--text-muted); text-transform: uppercase; letter-spacing: .05em; }
.related ul { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: .75rem; }
.related li { border: 1px solid var(--border); border-radius: 8px; padding: .6rem .9rem; }
.related-desc { display: block; font-size: .85rem; color: var(--text-muted); }

@media (max-width: 800px) {
  .sidebar { transform: translateX(-100%); transition: transform .2s; }
  .sidebar.open { transform: none; }
  .sidebar-overlay.visible { display: block; position: fixed; inset: 0; background: rgba(0,0,0,.3); z-index: 10; }
  .content { margin-left: 0; padding: 1rem; }
  .menu-toggle { visibility: visible; }
}
`

// jsContent handles theme, sidebar, search, static tabs, copy buttons,
// mermaid and live reload.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var body = document.body;

  // ===== Theme toggle =====
  function getStoredTheme() {
    try { return localStorage.getItem("archdocs-theme"); } catch(e) { return null; }
  }

  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("archdocs-theme", theme); } catch(e) {}
    renderMermaid(theme);
  }

  // ===== Mermaid =====
  function renderMermaid(theme) {
    if (typeof mermaid === "undefined") return;
    mermaid.initialize({ startOnLoad: false, theme: theme === "dark" ? "dark" : "default", securityLevel: "strict" });
    document.querySelectorAll(".mermaid").forEach(function(el, idx) {
      var src = el.getAttribute("data-source");
      if (!src) {
        src = el.textContent;
        el.setAttribute("data-source", src);
      }
      mermaid.render("mermaid-" + idx + "-" + Date.now(), src).then(function(result) {
        el.innerHTML = result.svg;
      }).catch(function(err) {
        el.classList.add("mermaid-error");
        el.textContent = src;
      });
    });
  }

  var stored = getStoredTheme();
  if (stored) {
    setTheme(stored);
  } else if (window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches) {
    setTheme("dark");
  } else {
    setTheme("light");
  }

  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      var current = html.getAttribute("data-theme") || "light";
      setTheme(current === "dark" ? "light" : "dark");
    });
  }

  // ===== Sidebar toggle (mobile) =====
  var menuToggle = document.getElementById("menu-toggle");
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");

  function toggleSidebar() {
    sidebar.classList.toggle("open");
    overlay.classList.toggle("visible");
  }

  if (menuToggle) menuToggle.addEventListener("click", toggleSidebar);
  if (overlay) overlay.addEventListener("click", toggleSidebar);

  // ===== Page filter =====
  var searchInput = document.getElementById("search-input");
  var sidebarTree = document.getElementById("sidebar-tree");
  var searchIndex = null;

  var indexURL = body.getAttribute("data-search-index");
  if (indexURL) {
    fetch(indexURL)
      .then(function(r) { return r.json(); })
      .then(function(data) { searchIndex = data; })
      .catch(function() { searchIndex = null; });
  }

  if (searchInput && sidebarTree) {
    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      var matching = new Set();
      if (query !== "" && searchIndex) {
        searchIndex.forEach(function(entry) {
          var haystack = (entry.title + " " + entry.summary + " " + entry.content).toLowerCase();
          if (haystack.indexOf(query) !== -1) matching.add(entry.id);
        });
      }
      sidebarTree.querySelectorAll("li[data-page]").forEach(function(item) {
        if (query === "") {
          item.classList.remove("hidden");
          return;
        }
        var text = item.textContent.toLowerCase();
        var match = text.indexOf(query) !== -1 || matching.has(item.getAttribute("data-page"));
        item.classList.toggle("hidden", !match);
      });
    });
  }

  // ===== Client-side tabs (static export) =====
  document.querySelectorAll(".tabs").forEach(function(group) {
    var buttons = group.querySelectorAll(":scope > .tab-list > button[data-tab]");
    buttons.forEach(function(btn) {
      btn.addEventListener("click", function() {
        var id = btn.getAttribute("data-tab");
        buttons.forEach(function(b) { b.classList.toggle("active", b === btn); });
        group.querySelectorAll(":scope > .tab-panel").forEach(function(panel) {
          panel.hidden = panel.getAttribute("data-panel") !== id;
        });
      });
    });
  });

  // ===== Copy buttons =====
  document.querySelectorAll(".page-content pre").forEach(function(pre) {
    if (pre.closest(".mermaid")) return;
    var btn = document.createElement("button");
    btn.className = "copy-btn";
    btn.textContent = "Copy";
    btn.addEventListener("click", function() {
      var code = pre.querySelector("code") || pre;
      navigator.clipboard.writeText(code.textContent).then(function() {
        btn.textContent = "Copied";
        setTimeout(function() { btn.textContent = "Copy"; }, 1500);
      });
    });
    pre.appendChild(btn);
  });

  // ===== Live reload =====
  if (body.getAttribute("data-live") === "true" && "WebSocket" in window) {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var connect = function() {
      var ws = new WebSocket(proto + location.host + "/ws");
      ws.onmessage = function(ev) {
        try {
          var msg = JSON.parse(ev.data);
          if (msg.type === "reload") location.reload();
        } catch(e) {}
      };
      ws.onclose = function() { setTimeout(connect, 2000); };
    };
    connect();
  }
})();
`
