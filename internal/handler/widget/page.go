package widget

// widgetPage is the embedded demo page. It ships every fixed element the
// controller binds (root, toggle, panel, messages, input, send, refresh,
// close, typing, emoji) and drives the widget API over fetch + websocket.
var widgetPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>ChatBot Widget</title>
<style>
:root{
  --accent:#2563eb;--accent-dark:#1d4ed8;--panel-bg:#ffffff;--page-bg:#f3f4f6;
  --border:#e5e7eb;--text:#111827;--muted:#6b7280;
  --user-bubble:#2563eb;--bot-bubble:#f3f4f6;
}
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,-apple-system,'Segoe UI',sans-serif;background:var(--page-bg);color:var(--text)}
.demo{max-width:640px;margin:60px auto;padding:0 20px}
.demo h1{font-size:24px;margin-bottom:8px}
.demo p{color:var(--muted);line-height:1.6}
#chatbot-root{position:fixed;bottom:24px;right:24px;z-index:1000;font-size:14px}
#chatbot-toggle{
  width:56px;height:56px;border:none;border-radius:50%;cursor:pointer;
  background:var(--accent);color:#fff;font-size:22px;
  box-shadow:0 4px 14px rgba(37,99,235,.35);
}
#chatbot-toggle:hover{background:var(--accent-dark)}
#chatbot-panel{
  display:none;position:absolute;bottom:72px;right:0;
  width:340px;height:460px;background:var(--panel-bg);
  border:1px solid var(--border);border-radius:14px;
  box-shadow:0 12px 32px rgba(0,0,0,.16);
  flex-direction:column;overflow:hidden;
}
#chatbot-panel.open{display:flex}
.cb-header{
  padding:12px 16px;background:var(--accent);color:#fff;
  display:flex;align-items:center;gap:8px;
}
.cb-header .name{font-weight:600;flex:1}
.cb-header button{
  background:none;border:none;color:#fff;cursor:pointer;
  font-size:15px;padding:4px;opacity:.85;
}
.cb-header button:hover{opacity:1}
#chatbot-messages{flex:1;overflow-y:auto;padding:14px;display:flex;flex-direction:column;gap:10px}
.cb-msg{max-width:80%;padding:9px 12px;border-radius:12px;line-height:1.5;white-space:pre-wrap;word-wrap:break-word}
.cb-msg.user{align-self:flex-end;background:var(--user-bubble);color:#fff;border-bottom-right-radius:4px}
.cb-msg.bot{align-self:flex-start;background:var(--bot-bubble);border-bottom-left-radius:4px}
.cb-msg .time{display:block;font-size:10px;opacity:.6;margin-top:4px}
#chatbot-typing{min-height:20px;padding:0 14px;font-size:12px;color:var(--muted)}
.cb-input-row{display:flex;gap:8px;padding:10px 12px;border-top:1px solid var(--border)}
#chatbot-input{
  flex:1;resize:none;border:1px solid var(--border);border-radius:8px;
  padding:8px 10px;font:inherit;outline:none;max-height:120px;
}
#chatbot-input:focus{border-color:var(--accent)}
#chatbot-emoji{background:none;border:none;cursor:pointer;font-size:17px}
#chatbot-send{
  border:none;border-radius:8px;background:var(--accent);color:#fff;
  padding:0 14px;cursor:pointer;font:inherit;
}
#chatbot-send:disabled{opacity:.4;cursor:not-allowed}
</style>
</head>
<body>
<div class="demo">
  <h1>ChatBot widget demo</h1>
  <p>A floating chat widget lives in the bottom-right corner. Click the
  bubble (or press Ctrl/Cmd+K) to open it, Escape closes it, Enter sends,
  Shift+Enter adds a line.</p>
</div>
<div id="chatbot-root">
  <div id="chatbot-panel">
    <div class="cb-header">
      <span class="name" id="chatbot-name">ChatBot</span>
      <button id="chatbot-refresh" title="Restart conversation">&#8635;</button>
      <button id="chatbot-close" title="Close">&#10005;</button>
    </div>
    <div id="chatbot-messages"></div>
    <div id="chatbot-typing"></div>
    <div class="cb-input-row">
      <textarea id="chatbot-input" rows="1" placeholder="Type a message..."></textarea>
      <button id="chatbot-emoji" title="Insert emoji">&#128578;</button>
      <button id="chatbot-send" disabled>Send</button>
    </div>
  </div>
  <button id="chatbot-toggle" title="Chat with us">&#128172;</button>
</div>
<script>
const api=p=>"/api/widget"+p;
const panel=document.getElementById("chatbot-panel"),
      toggle=document.getElementById("chatbot-toggle"),
      list=document.getElementById("chatbot-messages"),
      input=document.getElementById("chatbot-input"),
      send=document.getElementById("chatbot-send"),
      refresh=document.getElementById("chatbot-refresh"),
      closeBtn=document.getElementById("chatbot-close"),
      typing=document.getElementById("chatbot-typing"),
      emoji=document.getElementById("chatbot-emoji"),
      nameEl=document.getElementById("chatbot-name");
let botName="ChatBot";

function esc(s){return s.replace(/&/g,"&amp;").replace(/</g,"&lt;").replace(/>/g,"&gt;")}
function render(msg){
  const div=document.createElement("div");
  div.className="cb-msg "+(msg.sender==="user"?"user":"bot");
  const when=new Date(msg.timestamp).toLocaleTimeString([],{hour:"2-digit",minute:"2-digit"});
  div.innerHTML=esc(msg.content)+'<span class="time">'+when+"</span>";
  list.appendChild(div);
  list.scrollTop=list.scrollHeight;
}
function setOpen(open){panel.classList.toggle("open",open);if(open)list.scrollTop=list.scrollHeight}
function setTyping(on){typing.textContent=on?botName+" is typing...":""}

async function loadState(){
  const s=await fetch(api("/state")).then(r=>r.json());
  botName=s.botName||botName;nameEl.textContent=botName;
  setOpen(s.state==="open");setTyping(s.surface.typing);
}
async function loadHistory(){
  const msgs=await fetch(api("/history")).then(r=>r.json());
  list.innerHTML="";(msgs||[]).forEach(render);
}
async function post(path,body){
  return fetch(api(path),{method:"POST",headers:{"Content-Type":"application/json"},body:body?JSON.stringify(body):"{}"});
}
async function submit(){
  const text=input.value;
  if(!text.trim())return;
  input.value="";autosize();send.disabled=true;
  await post("/send",{message:text});
  await loadHistory();
}
function autosize(){
  input.style.height="auto";
  input.style.height=Math.min(input.scrollHeight,120)+"px";
  send.disabled=!input.value.trim();
}

toggle.onclick=async()=>{const r=await post("/toggle").then(r=>r.json());setOpen(r.state==="open")};
closeBtn.onclick=async()=>{await post("/close");setOpen(false)};
refresh.onclick=async()=>{await post("/clear");await loadHistory()};
send.onclick=submit;
emoji.onclick=()=>{input.value+=["😊","👍","❤️","🎉","🤖"][Math.floor(Math.random()*5)];autosize();input.focus()};
input.oninput=autosize;
input.onkeydown=e=>{if(e.key==="Enter"&&!e.shiftKey){e.preventDefault();submit()}};
document.onkeydown=e=>{
  if(e.key==="Escape"&&panel.classList.contains("open")){closeBtn.onclick()}
  if((e.ctrlKey||e.metaKey)&&e.key.toLowerCase()==="k"){e.preventDefault();toggle.onclick()}
};

function connect(){
  const proto=location.protocol==="https:"?"wss":"ws";
  const ws=new WebSocket(proto+"://"+location.host+api("/ws"));
  ws.onmessage=ev=>{
    const e=JSON.parse(ev.data);
    if(e.kind==="message"&&e.message)render(e.message);
    else if(e.kind==="typing")setTyping(!!e.typing);
    else if(e.kind==="open")setOpen(!!e.open);
    else if(e.kind==="clear")list.innerHTML="";
    else if(e.kind==="scroll")list.scrollTop=list.scrollHeight;
  };
  ws.onclose=()=>setTimeout(connect,3000);
}

loadState().then(loadHistory);
connect();
</script>
</body>
</html>`
