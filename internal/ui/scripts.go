package ui

import (
	"fmt"

	"cvsite/internal/widget"
)

// themeInitScript runs inline in <head> before first paint so a stored theme
// never flashes the wrong colors. It only reads; all writes happen in
// widgetBehaviorScript.
var themeInitScript = fmt.Sprintf(`(function(){
  var root=document.documentElement;
  var stored=null;
  try { stored=localStorage.getItem(%[1]q); } catch (_) {}
  if(stored==='light'||stored==='dark'){
    root.setAttribute('data-theme',stored);
  }
})();`, widget.ThemeKey)

// widgetBehaviorScript wires the page widgets after DOM load: theme toggle,
// scroll-spy navigation, certificate lightbox, and print export. Each widget
// bails out independently when its anchor elements are missing. The storage
// key, intersection margins, and print delay come from the widget package so
// the page and the state model cannot drift apart.
var widgetBehaviorScript = fmt.Sprintf(`(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  var themeGeneration=0;

  function storedTheme(){
    try {
      var v=localStorage.getItem(%[1]q);
      return v==='light'||v==='dark'?v:null;
    } catch (_) { return null; }
  }

  function resolvedTheme(){
    var explicit=root.getAttribute('data-theme');
    if(explicit==='light'||explicit==='dark'){ return explicit; }
    return media.matches?'dark':'light';
  }

  function applyTheme(theme){
    themeGeneration++;
    root.setAttribute('data-theme',theme);
  }

  function setTheme(theme){
    applyTheme(theme);
    try { localStorage.setItem(%[1]q,theme); } catch (_) {}
    syncThemeToggle();
  }

  function syncThemeToggle(){
    var toggle=document.getElementById('theme-toggle');
    if(!toggle){ return; }
    var isDark=resolvedTheme()==='dark';
    toggle.setAttribute('aria-label', isDark?'Switch to light theme':'Switch to dark theme');
  }

  var toggle=document.getElementById('theme-toggle');
  if(toggle){
    toggle.addEventListener('click', function(){
      setTheme(resolvedTheme()==='dark'?'light':'dark');
    });
    syncThemeToggle();
  }

  (function(){
    var links=document.querySelectorAll('a[data-nav]');
    var sections=document.querySelectorAll('section[data-section]');
    if(!links.length||!sections.length){ return; }
    function setActive(id){
      links.forEach(function(link){
        link.classList.toggle('active', link.getAttribute('data-nav')===id);
      });
    }
    var observer=new IntersectionObserver(function(entries){
      entries.forEach(function(entry){
        if(entry.isIntersecting){ setActive(entry.target.id); }
      });
    },{ rootMargin: %[2]q });
    sections.forEach(function(section){ observer.observe(section); });
  })();

  (function(){
    var lightbox=document.getElementById('lightbox');
    if(!lightbox){ return; }
    var image=document.getElementById('lightbox-image');
    var caption=document.getElementById('lightbox-caption');
    var closeBtn=document.getElementById('lightbox-close');
    var isOpen=false;

    function open(src,alt,title){
      if(!src){ return; }
      image.setAttribute('src',src);
      image.setAttribute('alt',alt||'');
      caption.textContent=title||'';
      if(!isOpen){
        lightbox.classList.add('open');
        document.body.style.overflow='hidden';
        isOpen=true;
      }
      if(closeBtn){ closeBtn.focus(); }
    }

    function close(){
      if(!isOpen){ return; }
      lightbox.classList.remove('open');
      document.body.style.overflow='';
      isOpen=false;
    }

    document.querySelectorAll('[data-lightbox-src]').forEach(function(thumb){
      thumb.addEventListener('click', function(){
        open(thumb.getAttribute('data-lightbox-src'),
          thumb.getAttribute('data-lightbox-alt'),
          thumb.getAttribute('data-lightbox-title'));
      });
    });
    lightbox.addEventListener('click', function(e){
      var content=document.getElementById('lightbox-content');
      if(!content||!content.contains(e.target)){ close(); }
    });
    if(closeBtn){ closeBtn.addEventListener('click', close); }
    document.addEventListener('keydown', function(e){
      if(e.key==='Escape'&&isOpen){ close(); }
    });
  })();

  (function(){
    var printBtn=document.getElementById('print-button');
    if(!printBtn){ return; }
    printBtn.addEventListener('click', function(){
      var hadExplicit=root.getAttribute('data-theme');
      var generation=themeGeneration;
      themeGeneration++;
      root.setAttribute('data-theme','light');
      setTimeout(function(){
        window.print();
        // Skip the restore if the user changed the theme during the delay.
        if(themeGeneration!==generation+1){ return; }
        if(hadExplicit==='light'||hadExplicit==='dark'){
          root.setAttribute('data-theme',hadExplicit);
        } else {
          root.removeAttribute('data-theme');
        }
      }, %[3]d);
    });
  })();
})();`, widget.ThemeKey, widget.DefaultIntersectionConfig().RootMargin(), widget.DefaultPrintDelay.Milliseconds())
