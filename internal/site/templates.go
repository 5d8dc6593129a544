package site

// pageTemplate is the Go html/template for each rendered Markdown page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
  <link rel="stylesheet" href="{{.BasePath}}highlight.css">
</head>
<body>
  <main class="page-content">
    {{.Content}}
  </main>
</body>
</html>`

// cssContent styles the injected buttons. The button sits inside the pre,
// in front of the code element.
const cssContent = `pre.highlight {
  position: relative;
}

.copy-btn {
  position: absolute;
  top: 8px;
  right: 8px;
  background: #f6f8fa;
  border: 1px solid #d0d7de;
  border-radius: 4px;
  color: #57606a;
  cursor: pointer;
  padding: 4px 8px;
  font-size: 0.75rem;
  opacity: 0;
  transition: opacity 0.2s;
}

pre.highlight:hover .copy-btn,
.copy-btn:focus {
  opacity: 1;
}

.copy-btn:hover {
  color: #0969da;
  border-color: #0969da;
}
`

// scriptTemplate binds the statically injected buttons at page load. Each
// button copies the text node of the element right after it.
const scriptTemplate = `(function() {
  var IDLE_HTML = "{{js .IdleHTML}}";
  var CONFIRMED_HTML = "{{js .ConfirmedHTML}}";
  var TEXT_SELECTOR = "{{js .TextSelector}}";
  var REVERT_MS = {{.RevertMS}};

  document.querySelectorAll("button.{{js .ClassName}}").forEach(function(button) {
    var code_block = button.nextElementSibling;
    if (!code_block) {
      return;
    }
    button.addEventListener("click", function() {
      var text = code_block.querySelector(TEXT_SELECTOR);
      if (!text || !navigator.clipboard) {
        return;
      }
      navigator.clipboard.writeText(text.innerText).then(function() {
        button.innerHTML = CONFIRMED_HTML;
        setTimeout(function() {
          button.innerHTML = IDLE_HTML;
        }, REVERT_MS);
      }, function() {});
    });
  });
})();
`
